package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// RequestIDKey 请求ID在gin.Context中的key
const RequestIDKey = "request_id"

// RequestIDHeader 请求ID响应头
const RequestIDHeader = "X-Request-ID"

// slowRequestThreshold 慢请求阈值
const slowRequestThreshold = 3 * time.Second

// RequestID 生成或透传请求ID
// 客户端带了X-Request-ID就沿用，便于跨服务排查
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Logger 请求日志中间件
// 记录方法、路径、状态码、耗时、客户端IP、请求ID；不记录请求体与API Key
// 必须挂在Tracing之后，才能取到请求的Span
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case latency > slowRequestThreshold:
			event = log.Warn().Bool("slow", true)
		default:
			event = log.Info()
		}

		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		// 启用追踪时带上trace_id/span_id，便于日志与链路互查
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			event = event.
				Str("trace_id", traceID).
				Str("span_id", tracing.ExtractSpanID(c.Request.Context()))
		}

		event.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency_ms", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP Request")
	}
}
