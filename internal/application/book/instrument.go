package book

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const tracerName = "books"

// startOperation 为一次用例执行开启Span并在结束时记录指标
// 用法:
//
//	ctx, finish := startOperation(ctx, "create")
//	defer func() { finish(err) }()
func startOperation(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "Book."+operation,
		trace.WithAttributes(append(attrs, attribute.String("book.operation", operation))...))

	return ctx, func(err error) {
		metrics.ObserveBookOperation(operation, err, time.Since(start))
		tracing.EndSpan(span, err)
	}
}

// publish 发布事件，失败只记录日志，不影响已提交的写操作
func publish(ctx context.Context, publisher EventPublisher, event BookEvent) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("event", event.Type).
			Uint("book_id", event.BookID).
			Msg("发布图书事件失败")
	}
}
