package dto

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// CreateBookRequest 创建/整体替换请求(POST、PUT共用)
// 字段约束由领域层统一校验,这里不加binding tag,
// 这样缺失的多个字段可以在一次响应里全部列出
type CreateBookRequest struct {
	Title  string `json:"title" example:"Dune"`
	Author string `json:"author" example:"Frank Herbert"`
	Year   int    `json:"year" example:"1965"`
	ISBN   string `json:"isbn,omitempty" example:"9780441013593"` // 可选,10-13位
}

// ToDraft 转换为领域输入
func (r CreateBookRequest) ToDraft() book.Draft {
	return book.Draft{
		Title:  r.Title,
		Author: r.Author,
		Year:   r.Year,
		ISBN:   r.ISBN,
	}
}

// PatchBookRequest 部分更新请求
// 未出现的字段保持不变;isbn传null或空字符串表示清空
// title/author/year为必填字段,传null按未提供处理
type PatchBookRequest struct {
	Title  *string        `json:"title,omitempty" example:"Dune Messiah"`
	Author *string        `json:"author,omitempty" example:"Frank Herbert"`
	Year   *int           `json:"year,omitempty" example:"1969"`
	ISBN   NullableString `json:"isbn" swaggertype:"string" example:"9780593098233"`
}

// ToPatch 转换为领域输入
func (r PatchBookRequest) ToPatch() book.Patch {
	return book.Patch{
		Title:  r.Title,
		Author: r.Author,
		Year:   r.Year,
		ISBN:   r.ISBN.Patch(),
	}
}

// NullableString 区分"字段未出现"与"显式传null"的字符串
type NullableString struct {
	Set   bool    // 请求体中出现了该字段
	Value *string // nil表示null
}

// UnmarshalJSON 字段出现时才会被调用(包括null)
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// Patch 转换为领域层的可选字段:未出现→nil,null→空字符串(清空)
func (n NullableString) Patch() *string {
	if !n.Set {
		return nil
	}
	if n.Value == nil {
		empty := ""
		return &empty
	}
	return n.Value
}

// ListBooksQuery 列表/统计查询参数
// 非整数的year/offset/limit在绑定阶段即被拒绝
type ListBooksQuery struct {
	Author   string `form:"author" example:"tolkien"`
	Year     *int   `form:"year" example:"1954"`
	YearFrom *int   `form:"year_from" example:"1900"`
	YearTo   *int   `form:"year_to" example:"2000"`
	Offset   *int   `form:"offset" example:"0"`
	Limit    *int   `form:"limit" example:"10"`
}

// Filter 过滤条件
func (q ListBooksQuery) Filter() book.ListFilter {
	return book.ListFilter{
		Author:   q.Author,
		Year:     q.Year,
		YearFrom: q.YearFrom,
		YearTo:   q.YearTo,
	}
}

// PageRequest 分页参数
func (q ListBooksQuery) PageRequest() book.PageRequest {
	return book.PageRequest{Offset: q.Offset, Limit: q.Limit}
}

// BookResponse 图书响应
type BookResponse struct {
	ID        uint      `json:"id" example:"1"`
	Title     string    `json:"title" example:"Dune"`
	Author    string    `json:"author" example:"Frank Herbert"`
	Year      int       `json:"year" example:"1965"`
	ISBN      *string   `json:"isbn" example:"9780441013593"` // 未填写时为null
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// NewBookResponse 领域实体 → HTTP响应
func NewBookResponse(b *book.Book) *BookResponse {
	resp := &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Year:      b.Year,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.ISBN != "" {
		isbn := b.ISBN
		resp.ISBN = &isbn
	}
	return resp
}

// ListBooksResponse 图书列表响应
type ListBooksResponse struct {
	Items  []*BookResponse `json:"items"`
	Total  int64           `json:"total" example:"42"` // 过滤后、分页前的总数
	Offset int             `json:"offset" example:"0"`
	Limit  int             `json:"limit" example:"10"`
}

// NewListBooksResponse 列表结果 → HTTP响应
func NewListBooksResponse(res *book.ListResult) *ListBooksResponse {
	items := make([]*BookResponse, len(res.Items))
	for i, b := range res.Items {
		items[i] = NewBookResponse(b)
	}
	return &ListBooksResponse{
		Items:  items,
		Total:  res.Total,
		Offset: res.Pagination.Offset,
		Limit:  res.Pagination.Limit,
	}
}

// StatsResponse 统计响应
// JSON对象的key只能是字符串,世纪用十进制字符串表示("20"、"21")
type StatsResponse struct {
	Total     int64            `json:"total" example:"3"`
	ByAuthor  map[string]int64 `json:"by_author"`
	ByCentury map[string]int64 `json:"by_century"`
}

// NewStatsResponse 统计结果 → HTTP响应
func NewStatsResponse(s *book.Stats) *StatsResponse {
	byCentury := make(map[string]int64, len(s.ByCentury))
	for century, count := range s.ByCentury {
		byCentury[strconv.Itoa(century)] = count
	}
	return &StatsResponse{
		Total:     s.Total,
		ByAuthor:  s.ByAuthor,
		ByCentury: byCentury,
	}
}

// WelcomeResponse 根路径响应
type WelcomeResponse struct {
	Message string `json:"message" example:"Welcome to the Books API"`
	Docs    string `json:"docs" example:"/swagger/index.html"`
}

// PingResponse 健康检查响应
type PingResponse struct {
	Message  string `json:"message" example:"pong"`
	Database string `json:"database" example:"up"`
}
