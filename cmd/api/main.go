package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// @title                       Books API
// @version                     1.0
// @description                 图书CRUD服务：读操作公开，写操作需要X-API-Key。
// @BasePath                    /
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key

// main 主程序入口
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("driver", cfg.Database.Driver).
		Msg("配置加载成功")

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("服务异常退出")
	}
}

// run 组装依赖、启动服务、等待退出信号
func run(cfg *config.Config) error {
	// 1. 追踪(可选)
	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("初始化Tracer失败: %w", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Error().Err(err).Msg("关闭Tracer失败")
			}
		}()
	}

	// 2. 依赖注入(与wire.go中的InitializeEngine保持一致)
	engine, cleanup, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// 3. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("docs", router.DocsPath).
			Msg("服务启动成功")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 4. 等待退出信号(SIGINT/SIGTERM)或监听失败
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("收到退出信号，开始优雅关闭")
	}

	// 5. 优雅关闭：等待进行中的请求完成，之后由defer关闭MQ、数据库、Tracer
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("优雅关闭失败: %w", err)
	}

	log.Info().Msg("服务已停止")
	return nil
}

// newEngine 手动依赖注入
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
func newEngine(cfg *config.Config) (*gin.Engine, func(), error) {
	// 基础设施层
	db, closeDB, err := provideDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化数据库失败: %w", err)
	}

	publisher, closePublisher, err := provideEventPublisher(cfg)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("初始化RabbitMQ失败: %w", err)
	}

	cleanup := func() {
		closePublisher()
		closeDB()
	}

	bookRepo := sqlstore.NewBookRepository(db)

	// 领域层
	bookService := book.NewService(bookRepo, providePagePolicy(cfg))

	// 应用层
	bookHandler := handler.NewBookHandler(
		appbook.NewCreateBookUseCase(bookService, publisher),
		appbook.NewGetBookUseCase(bookService),
		appbook.NewListBooksUseCase(bookService),
		appbook.NewUpdateBookUseCase(bookService, publisher),
		appbook.NewDeleteBookUseCase(bookService, publisher),
		appbook.NewBookStatsUseCase(bookService),
	)

	// 接口层
	healthHandler, err := provideHealthHandler(cfg, db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	engine := router.New(cfg, bookHandler, healthHandler, provideAuthMiddleware(cfg))
	return engine, cleanup, nil
}
