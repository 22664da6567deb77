package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一包装为存储错误，不向调用方暴露SQL细节
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
		ISBN:   nullableString(b.ISBN),
	}

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, translateError(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// List 过滤+分页查询
func (r *bookRepository) List(ctx context.Context, filter book.ListFilter, page book.Pagination) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 构建查询(Session使同一个查询条件可以复用于Count和Find)
	query := applyFilter(r.db.WithContext(ctx).Model(&BookModel{}), filter).Session(&gorm.Session{})

	// 查询总数(分页前)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 固定按id升序，保证分页稳定：新插入的记录id更大，不会打乱已返回的页
	err := query.Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// Replace 整体替换
func (r *bookRepository) Replace(ctx context.Context, id uint, draft book.Draft) (*book.Book, error) {
	return r.update(ctx, id, map[string]interface{}{
		"title":  draft.Title,
		"author": draft.Author,
		"year":   draft.Year,
		"isbn":   nullableString(draft.ISBN),
	})
}

// Patch 部分更新
func (r *bookRepository) Patch(ctx context.Context, id uint, patch book.Patch) (*book.Book, error) {
	fields := make(map[string]interface{}, 4)
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Author != nil {
		fields["author"] = *patch.Author
	}
	if patch.Year != nil {
		fields["year"] = *patch.Year
	}
	if patch.ISBN != nil {
		fields["isbn"] = nullableString(*patch.ISBN)
	}
	return r.update(ctx, id, fields)
}

// update 在单条记录事务内完成"检查存在 → 更新 → 读回"
// 不使用Save：记录被并发删除时Save会重新插入，而这里应返回不存在
func (r *bookRepository) update(ctx context.Context, id uint, fields map[string]interface{}) (*book.Book, error) {
	var model BookModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model, id).Error; err != nil {
			return err
		}

		if len(fields) == 0 {
			return nil
		}

		if err := tx.Model(&BookModel{ID: id}).Updates(fields).Error; err != nil {
			return err
		}

		return tx.First(&model, id).Error
	})
	if err != nil {
		return nil, translateError(err, "更新图书失败")
	}

	return toBookEntity(&model), nil
}

// Delete 物理删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// authorCount 作者分组计数行
type authorCount struct {
	Author string
	Count  int64
}

// yearCount 年份分组计数行
type yearCount struct {
	Year  int
	Count int64
}

// Aggregate 按作者、年份分组计数
// 世纪在domain层由年份计算，避免依赖各数据库不同的整数除法语义
func (r *bookRepository) Aggregate(ctx context.Context, filter book.ListFilter) (*book.Aggregate, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&BookModel{}), filter).Session(&gorm.Session{})

	var authors []authorCount
	err := query.Select("author, COUNT(*) AS count").
		Group("author").
		Scan(&authors).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计作者分布失败")
	}

	var years []yearCount
	err = query.Select("year, COUNT(*) AS count").
		Group("year").
		Scan(&years).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计年份分布失败")
	}

	agg := &book.Aggregate{
		ByAuthor: make(map[string]int64, len(authors)),
		ByYear:   make(map[int]int64, len(years)),
	}
	for _, row := range authors {
		agg.ByAuthor[row.Author] = row.Count
		agg.Total += row.Count
	}
	for _, row := range years {
		agg.ByYear[row.Year] = row.Count
	}

	return agg, nil
}

// =========================================
// 辅助函数:查询条件与模型转换
// =========================================

// applyFilter 追加过滤条件
// 作者:LOWER(author) LIKE '%关键词%'，关键词中的%和_按字面匹配
// SQLite的lower已替换为Unicode版本(见sqlite.go)
func applyFilter(query *gorm.DB, filter book.ListFilter) *gorm.DB {
	if filter.Author != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Author)) + "%"
		query = query.Where("LOWER(author) LIKE ? ESCAPE '!'", pattern)
	}
	if filter.Year != nil {
		query = query.Where("year = ?", *filter.Year)
	}
	if filter.YearFrom != nil {
		query = query.Where("year >= ?", *filter.YearFrom)
	}
	if filter.YearTo != nil {
		query = query.Where("year <= ?", *filter.YearTo)
	}
	return query
}

// translateError 记录不存在 → ErrBookNotFound，其余包装为存储错误
func translateError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return book.ErrBookNotFound
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Wrap(err, message)
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Year:      model.Year,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.ISBN != nil {
		b.ISBN = *model.ISBN
	}
	return b
}
