package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 所有输入在到达Repository之前完成校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	CreateBook(ctx context.Context, draft Draft) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 过滤+分页查询
	ListBooks(ctx context.Context, filter ListFilter, req PageRequest) (*ListResult, error)

	// ReplaceBook 整体替换
	ReplaceBook(ctx context.Context, id uint, draft Draft) (*Book, error)

	// PatchBook 部分更新
	PatchBook(ctx context.Context, id uint, patch Patch) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id uint) error

	// Stats 统计(总数、作者分布、世纪分布)
	// filter为空时统计全表
	Stats(ctx context.Context, filter ListFilter) (*Stats, error)
}

// ListResult 分页查询结果
type ListResult struct {
	Items      []*Book
	Total      int64 // 过滤后、分页前的总数
	Pagination Pagination
}

// service 领域服务实现
type service struct {
	repo   Repository
	policy PagePolicy
}

// NewService 创建图书领域服务
func NewService(repo Repository, policy PagePolicy) Service {
	if policy.MaxLimit <= 0 {
		policy = DefaultPagePolicy
	}
	return &service{repo: repo, policy: policy}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, draft Draft) (*Book, error) {
	// 1. 字段校验
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	// 2. 创建实体并持久化
	book := NewBook(draft)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 过滤+分页查询
func (s *service) ListBooks(ctx context.Context, filter ListFilter, req PageRequest) (*ListResult, error) {
	// 1. 分页参数默认值与范围校验
	page, err := s.policy.Resolve(req)
	if err != nil {
		return nil, err
	}

	// 2. 过滤条件校验
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// 3. 查询
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	return &ListResult{Items: items, Total: total, Pagination: page}, nil
}

// ReplaceBook 整体替换
func (s *service) ReplaceBook(ctx context.Context, id uint, draft Draft) (*Book, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Replace(ctx, id, draft)
}

// PatchBook 部分更新
func (s *service) PatchBook(ctx context.Context, id uint, patch Patch) (*Book, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Patch(ctx, id, patch)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Stats 统计
func (s *service) Stats(ctx context.Context, filter ListFilter) (*Stats, error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	agg, err := s.repo.Aggregate(ctx, filter)
	if err != nil {
		return nil, err
	}

	return NewStats(agg), nil
}
