package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// ErrorBody 统一错误响应结构
// 设计说明：
// 1. Code是业务错误码，方便客户端判断错误类型
// 2. HTTP状态码由错误码区间决定（见apperrors.HTTPStatus）
// 3. Details仅在参数校验失败时返回，key为字段名
type ErrorBody struct {
	Code    int               `json:"code" example:"40401"`
	Message string            `json:"message" example:"图书不存在"`
	Details map[string]string `json:"details,omitempty"`
}

// OK 200响应，直接输出业务数据
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应（资源创建成功）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204响应（删除成功）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	// 内部错误只记录日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		log.Error().
			Err(appErr.Err).
			Str("request_id", c.GetString("request_id")).
			Int("code", appErr.Code).
			Str("path", c.Request.URL.Path).
			Msg(appErr.Message)
	}

	c.JSON(status, ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// Abort 输出错误并终止后续Handler（中间件使用）
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
