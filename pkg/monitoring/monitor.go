package monitoring

import (
	"strconv"
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

	// ActivityRecords 按类型统计写入的活动记录
	ActivityRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_records_total",
			Help: "Total number of recorded user activities",
		},
		[]string{"kind"},
	)

	InterviewSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_sessions_total",
			Help: "Total number of mock interview sessions",
		},
		[]string{"track", "outcome"},
	)

	CoinsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coins_awarded_total",
			Help: "Total number of coins awarded to users",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ActivityRecords)
	prometheus.MustRegister(InterviewSessions)
	prometheus.MustRegister(CoinsAwarded)
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
