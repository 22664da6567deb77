package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookshelf/docs"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// DocsPath Swagger UI入口
const DocsPath = "/swagger/index.html"

// New 创建Gin引擎并注册全部路由
//
// 路由表：
//
//	GET    /                  欢迎信息
//	GET    /ping              健康检查
//	GET    /metrics           Prometheus指标(metrics.enabled)
//	GET    /swagger/*any      Swagger UI(docs.enabled)
//	GET    /books             列表(公开)
//	GET    /books/stats       统计(公开)
//	GET    /books/:id         详情(公开)
//	POST   /books             创建(API Key)
//	PUT    /books/:id         整体替换(API Key)
//	PATCH  /books/:id         部分更新(API Key)
//	DELETE /books/:id         删除(API Key)
//
// /books下的路由同时挂载在/api/books下
func New(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	// 1. 运行模式
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// 2. 全局中间件(顺序：请求ID → 追踪 → 日志 → panic恢复 → 指标)
	r.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Logger(), middleware.Recovery())
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	// 3. 系统路由
	r.GET("/", healthHandler.Root)
	r.GET("/ping", healthHandler.Ping)

	// 4. 文档
	if cfg.Docs.Enabled {
		docs.SwaggerInfo.BasePath = "/"
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 5. 图书路由
	registerBookRoutes(r.Group("/books"), bookHandler, authMiddleware)
	registerBookRoutes(r.Group("/api/books"), bookHandler, authMiddleware)

	// 6. 未匹配路由返回统一错误体
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})

	return r
}

// registerBookRoutes 读公开、写需要API Key
func registerBookRoutes(books *gin.RouterGroup, h *handler.BookHandler, auth *middleware.AuthMiddleware) {
	// 公开接口
	books.GET("", h.ListBooks)
	books.GET("/stats", h.GetBookStats)
	books.GET("/:id", h.GetBook)

	// 需要API Key
	writes := books.Group("", auth.RequireAPIKey())
	{
		writes.POST("", h.CreateBook)
		writes.PUT("/:id", h.ReplaceBook)
		writes.PATCH("/:id", h.PatchBook)
		writes.DELETE("/:id", h.DeleteBook)
	}
}
