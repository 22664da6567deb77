package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// AuthMiddleware API Key访问控制
// 设计说明：
// 1. 只保护写操作（POST/PUT/PATCH/DELETE），读操作公开
// 2. 配置了api_key_hash时用bcrypt比对，否则与api_key做常量时间比较
// 3. 校验失败直接终止请求，不会触达任何仓储调用
type AuthMiddleware struct {
	header string
	apiKey []byte
	hash   []byte
}

// NewAuthMiddleware 创建访问控制中间件
func NewAuthMiddleware(cfg config.AuthConfig) *AuthMiddleware {
	m := &AuthMiddleware{header: cfg.Header}
	if cfg.APIKeyHash != "" {
		m.hash = []byte(cfg.APIKeyHash)
	} else {
		m.apiKey = []byte(cfg.APIKey)
	}
	return m
}

// RequireAPIKey 要求请求头携带正确的API Key
// 使用方式：
//
//	books.POST("", authMiddleware.RequireAPIKey(), bookHandler.CreateBook)
func (m *AuthMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取API Key（名称大小写不敏感，值大小写敏感）
		key := c.GetHeader(m.header)
		if key == "" {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		// 2. 校验
		if !m.verify(key) {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("API Key校验失败")
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}

		// 3. 继续处理请求
		c.Next()
	}
}

// verify 比对API Key
func (m *AuthMiddleware) verify(key string) bool {
	if m.hash != nil {
		return bcrypt.CompareHashAndPassword(m.hash, []byte(key)) == nil
	}
	return subtle.ConstantTimeCompare(m.apiKey, []byte(key)) == 1
}
