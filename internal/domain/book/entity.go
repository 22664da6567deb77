package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ID由存储层分配(自增主键),创建后不可变,删除后不复用
// 2. 实体只在完全合法时存在:写入前必须通过Draft/Patch校验
// 3. CreatedAt/UpdatedAt由存储层维护,仅作展示
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	Year      int    // 出版年份
	ISBN      string // ISBN号(可选,空字符串表示未填写)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft 完整的图书输入(创建、整体替换)
// 所有必填字段都必须提供,见Validate
type Draft struct {
	Title  string
	Author string
	Year   int
	ISBN   string
}

// NewBook 由已校验的Draft构造实体(工厂方法)
func NewBook(d Draft) *Book {
	now := time.Now()
	return &Book{
		Title:     d.Title,
		Author:    d.Author,
		Year:      d.Year,
		ISBN:      d.ISBN,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Draft 返回实体当前字段(不含ID与时间戳)
func (b *Book) Draft() Draft {
	return Draft{
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
		ISBN:   b.ISBN,
	}
}

// Replace 整体替换除ID外的全部字段
func (b *Book) Replace(d Draft) {
	b.Title = d.Title
	b.Author = d.Author
	b.Year = d.Year
	b.ISBN = d.ISBN
	b.UpdatedAt = time.Now()
}

// Patch 部分更新输入
// 字段为nil表示"未提供",保持原值不变;
// ISBN提供空字符串表示清空ISBN
type Patch struct {
	Title  *string
	Author *string
	Year   *int
	ISBN   *string
}

// IsEmpty 是否没有提供任何字段
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Year == nil && p.ISBN == nil
}

// Apply 将已提供的字段写入实体,未提供的字段不变
func (p Patch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if !p.IsEmpty() {
		b.UpdatedAt = time.Now()
	}
}
