package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// 图书事件类型，同时作为消息路由键
const (
	EventBookCreated = "book.created"
	EventBookUpdated = "book.updated"
	EventBookDeleted = "book.deleted"
)

// BookEvent 图书变更事件
// 删除事件只携带book_id
type BookEvent struct {
	Type       string    `json:"type"`
	BookID     uint      `json:"book_id"`
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	Year       int       `json:"year,omitempty"`
	ISBN       string    `json:"isbn,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 事件发布端口(由infrastructure/messaging实现)
type EventPublisher interface {
	Publish(ctx context.Context, event BookEvent) error
}

// NopEventPublisher 未启用消息队列时使用
type NopEventPublisher struct{}

// Publish 丢弃事件
func (NopEventPublisher) Publish(context.Context, BookEvent) error { return nil }

func newBookEvent(eventType string, b *book.Book) BookEvent {
	return BookEvent{
		Type:       eventType,
		BookID:     b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Year:       b.Year,
		ISBN:       b.ISBN,
		OccurredAt: time.Now().UTC(),
	}
}
