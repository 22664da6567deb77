package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrInvalidBook 图书字段校验失败(具体字段见Details)
	// 用法: errors.Is(err, book.ErrInvalidBook)
	ErrInvalidBook = apperrors.ErrValidation
)
