package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Pinger 数据库连通性检查(*sql.DB满足此接口)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler 根路径与健康检查
type HealthHandler struct {
	db       Pinger
	docsPath string
}

// NewHealthHandler 创建健康检查处理器
// docsPath为空表示未启用文档
func NewHealthHandler(db Pinger, docsPath string) *HealthHandler {
	return &HealthHandler{db: db, docsPath: docsPath}
}

// Root 欢迎信息与文档入口
// @Summary      欢迎信息
// @Tags         系统
// @Produce      json
// @Success      200 {object} dto.WelcomeResponse
// @Router       / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	response.OK(c, &dto.WelcomeResponse{
		Message: "Welcome to the Books API",
		Docs:    h.docsPath,
	})
}

// Ping 健康检查(包含数据库连通性)
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} dto.PingResponse
// @Failure      503 {object} dto.PingResponse "数据库不可用"
// @Router       /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("数据库健康检查失败")
		c.JSON(http.StatusServiceUnavailable, &dto.PingResponse{Message: "pong", Database: "down"})
		return
	}

	response.OK(c, &dto.PingResponse{Message: "pong", Database: "up"})
}
