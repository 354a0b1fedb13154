package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// OracleRequests 调用外部分析后端的次数，outcome 为 ok / http_error / timeout / network / malformed
	OracleRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "Total number of calls to the CareerQuest Oracle backend",
		},
		[]string{"endpoint", "outcome"},
	)

	OracleDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_request_duration_seconds",
			Help:    "Duration of calls to the CareerQuest Oracle backend",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"endpoint"},
	)

	// FallbackTotal 降级为本地模拟数据的次数
	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerquest_fallback_total",
			Help: "Number of operations served from local fallback data",
		},
		[]string{"operation"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "careerquest_active_sessions",
			Help: "Number of in-memory session controllers",
		},
	)
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(OracleRequests)
		prometheus.MustRegister(OracleDuration)
		prometheus.MustRegister(FallbackTotal)
		prometheus.MustRegister(ActiveSessions)
	})
}

func ObserveOracle(endpoint, outcome string, elapsed time.Duration) {
	OracleRequests.WithLabelValues(endpoint, outcome).Inc()
	OracleDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func RecordFallback(operation string) {
	FallbackTotal.WithLabelValues(operation).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
