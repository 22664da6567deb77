package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
// 设计说明:
// 1. 应用层负责用例编排:调用领域服务、记录指标与追踪、发布事件
// 2. 业务规则校验由领域服务负责(标题、作者长度、年份范围等)
// 3. 事件发布失败不回滚已创建的图书
type CreateBookUseCase struct {
	bookService book.Service
	publisher   EventPublisher
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service, publisher EventPublisher) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		publisher:   publisher,
	}
}

// Execute 执行创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, draft book.Draft) (created *book.Book, err error) {
	ctx, finish := startOperation(ctx, "create")
	defer func() { finish(err) }()

	// 1. 调用领域服务(校验 + 持久化)
	created, err = uc.bookService.CreateBook(ctx, draft)
	if err != nil {
		return nil, err
	}

	// 2. 发布事件
	publish(ctx, uc.publisher, newBookEvent(EventBookCreated, created))

	return created, nil
}
