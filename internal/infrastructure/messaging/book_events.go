package messaging

import (
	"context"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
)

// messagePublisher mq.Publisher的最小抽象
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BookEventPublisher 把图书事件发布到RabbitMQ
// 路由键即事件类型(book.created / book.updated / book.deleted)
type BookEventPublisher struct {
	publisher messagePublisher
}

// NewBookEventPublisher 创建图书事件发布者
func NewBookEventPublisher(publisher messagePublisher) *BookEventPublisher {
	return &BookEventPublisher{publisher: publisher}
}

// Publish 实现appbook.EventPublisher
func (p *BookEventPublisher) Publish(ctx context.Context, event appbook.BookEvent) error {
	return p.publisher.Publish(ctx, event.Type, event)
}

var _ appbook.EventPublisher = (*BookEventPublisher)(nil)
