package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookStatsUseCase 图书统计用例
// 不传过滤条件时统计全表;传入时与列表接口使用相同的过滤语义
type BookStatsUseCase struct {
	bookService book.Service
}

// NewBookStatsUseCase 创建统计用例
func NewBookStatsUseCase(bookService book.Service) *BookStatsUseCase {
	return &BookStatsUseCase{bookService: bookService}
}

// Execute 统计总数、作者分布、世纪分布
func (uc *BookStatsUseCase) Execute(ctx context.Context, filter book.ListFilter) (stats *book.Stats, err error) {
	ctx, finish := startOperation(ctx, "stats")
	defer func() { finish(err) }()

	return uc.bookService.Stats(ctx, filter)
}
