package book

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// DeleteBookUseCase 删除图书用例(物理删除)
type DeleteBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service, publisher EventPublisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Execute 删除图书,重复删除返回ErrBookNotFound
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, finish := startOperation(ctx, "delete", attribute.Int64("book.id", int64(id)))
	defer func() { finish(err) }()

	if err = uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	publish(ctx, uc.publisher, BookEvent{
		Type:       EventBookDeleted,
		BookID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
