package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of response latency (seconds) for HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"path", "method"},
	)
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Calls to external providers (openai, polar, resend, google_tts)",
		},
		[]string{"provider", "operation", "outcome"},
	)
	refundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refunds_total",
			Help: "Refund attempts after failed paid analyses",
		},
		[]string{"outcome"},
	)
)

// Middleware 라우트 템플릿 기준으로 요청 수/지연 시간 기록
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ObserveUpstream 외부 API 호출 결과 기록
func ObserveUpstream(provider, operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	upstreamRequestsTotal.WithLabelValues(provider, operation, outcome).Inc()
}

// ObserveRefund 환불 시도 결과 기록 (refunded, failed, order_not_found)
func ObserveRefund(outcome string) {
	refundsTotal.WithLabelValues(outcome).Inc()
}
