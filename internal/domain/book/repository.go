package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 不缓存实体,每次读取都访问存储
// 3. 每个方法都是一次独立的存储往返,不跨记录开启事务
type Repository interface {
	// Create 创建图书,回填存储分配的ID与时间戳
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// List 过滤+分页查询,按id升序
	// 返回的total是过滤后、分页前的总数
	List(ctx context.Context, filter ListFilter, page Pagination) ([]*Book, int64, error)

	// Replace 整体替换除ID外的字段,不存在返回ErrBookNotFound
	Replace(ctx context.Context, id uint, draft Draft) (*Book, error)

	// Patch 只更新提供的字段,不存在返回ErrBookNotFound
	Patch(ctx context.Context, id uint, patch Patch) (*Book, error)

	// Delete 物理删除,不存在返回ErrBookNotFound(重复删除同样返回)
	Delete(ctx context.Context, id uint) error

	// Aggregate 按作者、年份分组计数
	Aggregate(ctx context.Context, filter ListFilter) (*Aggregate, error)
}
