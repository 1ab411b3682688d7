// Package metrics 提供 Prometheus 指标集合与指标服务器
package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 定价服务指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 完成的定价批次数
	BatchesTotal prometheus.Counter
	// 已定价合约数
	OptionsPriced prometheus.Counter
	// 正在执行的定价计算数
	CalcInFlight prometheus.Gauge
	// 单批合约数分布
	BatchSize prometheus.Histogram
	// 按错误种类统计的定价失败数
	PricingErrors *prometheus.CounterVec
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		BatchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "batches_total",
			Help:      "Total pricing batches completed",
		}),
		OptionsPriced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "options_priced_total",
			Help:      "Total option contracts priced",
		}),
		CalcInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "calculations_in_flight",
			Help:      "Number of pricing calculations currently executing",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "batch_size",
			Help:      "Number of option requests per batch",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000},
		}),
		PricingErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pricing",
			Subsystem: serviceName,
			Name:      "errors_total",
			Help:      "Total pricing failures by kind",
		}, []string{"kind"}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BatchesTotal,
		m.OptionsPriced,
		m.CalcInFlight,
		m.BatchSize,
		m.PricingErrors,
	}
	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// StartHTTPServer 启动 Prometheus 指标服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	slog.Info("starting metrics server", "addr", addr, "path", path)
	return http.ListenAndServe(addr, mux)
}
