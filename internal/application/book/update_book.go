package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// UpdateBookUseCase 图书更新用例(整体替换PUT / 部分更新PATCH)
type UpdateBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service, publisher EventPublisher) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Replace 整体替换(除ID外所有字段)
func (uc *UpdateBookUseCase) Replace(ctx context.Context, id uint, draft book.Draft) (updated *book.Book, err error) {
	ctx, finish := startOperation(ctx, "replace", attribute.Int64("book.id", int64(id)))
	defer func() { finish(err) }()

	updated, err = uc.bookService.ReplaceBook(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.publisher, newBookEvent(EventBookUpdated, updated))
	return updated, nil
}

// Patch 部分更新(只修改提供的字段)
// 空Patch不产生事件
func (uc *UpdateBookUseCase) Patch(ctx context.Context, id uint, patch book.Patch) (updated *book.Book, err error) {
	ctx, finish := startOperation(ctx, "patch", attribute.Int64("book.id", int64(id)))
	defer func() { finish(err) }()

	updated, err = uc.bookService.PatchBook(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		publish(ctx, uc.publisher, newBookEvent(EventBookUpdated, updated))
	}
	return updated, nil
}
