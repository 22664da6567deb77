package handler

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// parseID 解析路径参数id(正整数)
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validation(map[string]string{"id": "必须是正整数"})
	}
	return uint(id), nil
}

// bindError 请求体/查询参数绑定失败 → 422
// JSON类型错误定位到具体字段，其余错误归到body或query
func bindError(err error) error {
	details := map[string]string{}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var numErr *strconv.NumError

	switch {
	case errors.Is(err, io.EOF):
		details["body"] = "请求体不能为空"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		details[typeErr.Field] = "类型错误，期望" + typeErr.Type.String()
	case errors.As(err, &typeErr), errors.As(err, &syntaxErr):
		details["body"] = "JSON格式错误"
	case errors.As(err, &numErr):
		details["query"] = "参数必须是整数: " + strconv.Quote(numErr.Num)
	default:
		details["body"] = err.Error()
	}

	return &apperrors.AppError{
		Code:    apperrors.ErrCodeBindError,
		Message: apperrors.ErrBindError.Message,
		Details: details,
	}
}
