package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持作者、年份、年份区间过滤,条件之间为AND
// 2. 分页默认值与上限由领域层PagePolicy决定,越界返回校验错误而不是截断
// 3. 固定按id升序,保证翻页稳定
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Filter book.ListFilter
	Page   book.PageRequest
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (result *book.ListResult, err error) {
	ctx, finish := startOperation(ctx, "list")
	defer func() { finish(err) }()

	return uc.bookService.ListBooks(ctx, req.Filter, req.Page)
}
