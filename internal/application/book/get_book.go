package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 按ID查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (found *book.Book, err error) {
	ctx, finish := startOperation(ctx, "get", attribute.Int64("book.id", int64(id)))
	defer func() { finish(err) }()

	return uc.bookService.GetBook(ctx, id)
}
