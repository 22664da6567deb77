package main

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
	"github.com/xiebiao/bookshelf/pkg/mq"
)

// Provider函数同时服务于main.go的手动注入和wire.go的Injector
// 需要从Config提取参数、或者需要返回cleanup的依赖在这里包装

// provideDB 创建数据库连接，cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := sqlstore.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := sqlstore.Close(db); err != nil {
			log.Error().Err(err).Msg("关闭数据库失败")
		}
	}
	return db, cleanup, nil
}

// providePagePolicy 分页策略
func providePagePolicy(cfg *config.Config) book.PagePolicy {
	return book.PagePolicy{
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}
}

// provideEventPublisher 图书事件发布者
// 未启用MQ时使用NopEventPublisher
func provideEventPublisher(cfg *config.Config) (appbook.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return appbook.NopEventPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}
	return messaging.NewBookEventPublisher(publisher), cleanup, nil
}

// provideAuthMiddleware 访问控制中间件
func provideAuthMiddleware(cfg *config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(cfg.Auth)
}

// provideHealthHandler 健康检查处理器
func provideHealthHandler(cfg *config.Config, db *gorm.DB) (*handler.HealthHandler, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	docsPath := ""
	if cfg.Docs.Enabled {
		docsPath = router.DocsPath
	}
	return handler.NewHealthHandler(sqlDB, docsPath), nil
}
