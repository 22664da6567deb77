package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, BookOperationsTotal)
	assert.NotNil(t, BookOperationDuration)
	assert.NotNil(t, MessagesPublishedTotal)
}

// TestObserveBookOperation 成功与失败分别计数
func TestObserveBookOperation(t *testing.T) {
	InitMetrics()

	success := getCounterVecValue(t, BookOperationsTotal, prometheus.Labels{"operation": "patch", "result": ResultSuccess})
	failure := getCounterVecValue(t, BookOperationsTotal, prometheus.Labels{"operation": "patch", "result": ResultFailure})
	observed := getHistogramVecCount(t, BookOperationDuration, prometheus.Labels{"operation": "patch"})

	ObserveBookOperation("patch", nil, 3*time.Millisecond)
	ObserveBookOperation("patch", nil, 5*time.Millisecond)
	ObserveBookOperation("patch", errors.New("boom"), time.Millisecond)

	assert.Equal(t, success+2, getCounterVecValue(t, BookOperationsTotal, prometheus.Labels{"operation": "patch", "result": ResultSuccess}))
	assert.Equal(t, failure+1, getCounterVecValue(t, BookOperationsTotal, prometheus.Labels{"operation": "patch", "result": ResultFailure}))
	assert.Equal(t, observed+3, getHistogramVecCount(t, BookOperationDuration, prometheus.Labels{"operation": "patch"}))
}

// TestObserveMessagePublished 消息发布计数
func TestObserveMessagePublished(t *testing.T) {
	InitMetrics()

	labels := prometheus.Labels{"exchange": "books.events", "routing_key": "book.created", "result": ResultFailure}
	before := getCounterVecValue(t, MessagesPublishedTotal, labels)

	ObserveMessagePublished("books.events", "book.created", errors.New("channel closed"))

	assert.Equal(t, before+1, getCounterVecValue(t, MessagesPublishedTotal, labels))
}

// TestGauge 正在处理的请求数
func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	assert.Equal(t, before+2, getGaugeValue(t, HTTPRequestsInProgress))

	DecGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, before, getGaugeValue(t, HTTPRequestsInProgress))
}

// TestNilCollectorsAreNoop 未初始化的指标不panic
func TestNilCollectorsAreNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		IncCounterVec(nil, prometheus.Labels{"method": "GET"})
		IncGauge(nil)
		DecGauge(nil)
		ObserveHistogramVec(nil, prometheus.Labels{"method": "GET"}, 0.1)
	})
}

// TestHandler /metrics输出包含业务指标
func TestHandler(t *testing.T) {
	InitMetrics()
	ObserveBookOperation("create", nil, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "book_operations_total"))
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels prometheus.Labels) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counterVec.With(labels).Write(&metric), "读取CounterVec值失败")
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric), "读取Gauge值失败")
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels prometheus.Labels) uint64 {
	t.Helper()
	var metric dto.Metric
	histogram := histogramVec.With(labels).(prometheus.Histogram)
	require.NoError(t, histogram.Write(&metric), "读取HistogramVec值失败")
	return metric.Histogram.GetSampleCount()
}
