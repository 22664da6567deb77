package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（与HTTP状态码一一对应，见HTTPStatus）
// 2. Message是用户友好的提示信息
// 3. Details是字段级别的错误明细（参数校验失败时返回）
// 4. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露存储细节）
type AppError struct {
	Code    int               `json:"code"`              // 业务错误码
	Message string            `json:"message"`           // 用户友好的错误提示
	Details map[string]string `json:"details,omitempty"` // 字段错误明细
	Err     error             `json:"-"`                 // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使预定义错误可以用errors.Is判断
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误）
// 用途：将底层错误转换为存储错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeStorage,
		Message: message,
		Err:     err,
	}
}

// Validation 创建带字段明细的参数错误
func Validation(details map[string]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: ErrValidation.Message,
		Details: details,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、认证失败、资源不存在）
// - 5xxxx: 服务端错误（数据库异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal = 50000 // 内部错误
	ErrCodeStorage  = 50001 // 存储错误

	// 参数错误（40000-40099）
	ErrCodeValidation = 40000 // 参数校验失败
	ErrCodeBindError  = 40001 // 请求体格式错误

	// 认证错误（40100-40199）
	ErrCodeUnauthorized = 40100 // API Key缺失或错误

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound = 40401 // 图书不存在
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal = New(ErrCodeInternal, "系统内部错误")

	// 认证
	ErrUnauthorized = New(ErrCodeUnauthorized, "API Key缺失或无效")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	// 参数错误
	ErrValidation = New(ErrCodeValidation, "参数校验失败")
	ErrBindError  = New(ErrCodeBindError, "请求格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: ErrCodeInternal, Message: "系统内部错误", Err: err}
}

// HTTPStatus 错误码 → HTTP状态码
// 按错误码所在区间映射，新增错误码无需修改此函数
func HTTPStatus(code int) int {
	switch {
	case code >= 40000 && code < 40100:
		return http.StatusUnprocessableEntity
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
