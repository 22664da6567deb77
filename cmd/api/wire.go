//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go，生成结果与main.go中的newEngine等价

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	provideDB,
	provideEventPublisher,
	sqlstore.NewBookRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	providePagePolicy,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewBookStatsUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	provideAuthMiddleware,
	provideHealthHandler,
	handler.NewBookHandler,
	router.New,
)

// InitializeEngine 初始化Gin引擎
// 返回的cleanup按创建的逆序关闭RabbitMQ连接与数据库
func InitializeEngine(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
