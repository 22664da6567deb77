// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter（计数器）：只增不减，例如请求总数、图书写操作次数
//   - Gauge（仪表盘）：可增可减，例如正在处理的请求数
//   - Histogram（直方图）：观测值分布，例如请求耗时
//
// # 使用方式
//
//	metrics.InitMetrics()                                 // 启动时调用一次
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))  // 暴露给Prometheus抓取
//	metrics.ObserveBookOperation("create", err, elapsed)  // 业务代码中记录
//
// 未调用InitMetrics时所有记录函数都是空操作，测试和关闭指标时无需额外判断。
//
// # 标签基数
//
// path标签使用gin的路由模板（/books/:id），不要使用原始URL，
// 否则每个id都会产生一条新的时间序列。
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 操作结果标签
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// initOnce 防止重复注册（promauto重复注册会panic）
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/books/:id）、status（200/422）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BookOperationsTotal 图书用例执行总数（Counter）
	// 标签：operation（create/get/list/replace/patch/delete/stats）、result（success/failure）
	BookOperationsTotal *prometheus.CounterVec

	// BookOperationDuration 图书用例耗时（Histogram）
	BookOperationDuration *prometheus.HistogramVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
func InitMetrics() {
	initOnce.Do(func() {
		// HTTP请求指标
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		// 图书业务指标
		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_operations_total",
				Help: "图书用例执行总数",
			},
			[]string{"operation", "result"},
		)

		BookOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "book_operation_duration_seconds",
				Help: "图书用例耗时（秒）",
				// 单表读写，桶比HTTP更细
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		)

		// 消息队列指标
		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)
	})
}

// Handler /metrics端点
func Handler() http.Handler {
	return promhttp.Handler()
}

// =========================================
// 记录函数（未初始化时为空操作）
// =========================================

// ObserveBookOperation 记录一次图书用例执行
func ObserveBookOperation(operation string, err error, elapsed time.Duration) {
	if BookOperationsTotal == nil {
		return
	}
	BookOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	BookOperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveMessagePublished 记录一次消息发布
func ObserveMessagePublished(exchange, routingKey string, err error) {
	if MessagesPublishedTotal == nil {
		return
	}
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
