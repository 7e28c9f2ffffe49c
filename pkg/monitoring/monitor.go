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

	// LessonToggleCounter tracks which provider ended up serving each
	// completion write, split by the fallback tier that absorbed it.
	LessonToggleCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_toggles_total",
			Help: "Total number of lesson completion toggles",
		},
		[]string{"provider", "completed"},
	)

	CelebrationCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "unit_celebrations_total",
			Help: "Total number of unit-completed celebrations fired",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(LessonToggleCounter)
	prometheus.MustRegister(CelebrationCounter)
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

// ObserveToggle records a completion toggle served by the named provider.
func ObserveToggle(provider string, completed bool) {
	LessonToggleCounter.WithLabelValues(provider, strconv.FormatBool(completed)).Inc()
}
