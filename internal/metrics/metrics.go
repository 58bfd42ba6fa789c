// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smarta"

var (
	// Request metrics
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIRequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "path"},
	)

	APIErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API responses with status >= 400",
		},
		[]string{"method", "path", "status"},
	)

	// Domain metrics
	PaymentsRecordedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Total number of payments recorded, by method",
		},
		[]string{"method"},
	)

	MpesaInitiationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mpesa_initiations_total",
			Help:      "Total number of STK push attempts, by result",
		},
		[]string{"result"},
	)

	BillsMarkedOverdueCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bills_marked_overdue_total",
		Help:      "Total number of bills moved from pending to overdue",
	})
)

// Middleware tracks request count, duration and errors per route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		APIRequestCounter.With(prometheus.Labels{"method": method, "path": path}).Inc()
		RequestDurationHistogram.With(prometheus.Labels{
			"method": method,
			"path":   path,
			"status": status,
		}).Observe(time.Since(start).Seconds())

		if c.Writer.Status() >= 400 {
			APIErrorCounter.With(prometheus.Labels{
				"method": method,
				"path":   path,
				"status": status,
			}).Inc()
		}
	}
}

// Handler serves the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordPayment counts a recorded payment
func RecordPayment(method string) {
	PaymentsRecordedCounter.With(prometheus.Labels{"method": method}).Inc()
}

// RecordMpesaInitiation counts an STK push attempt; result is "accepted" or "failed"
func RecordMpesaInitiation(result string) {
	MpesaInitiationsCounter.With(prometheus.Labels{"result": result}).Inc()
}

// RecordOverdue counts bills moved to overdue
func RecordOverdue(n int64) {
	if n > 0 {
		BillsMarkedOverdueCounter.Add(float64(n))
	}
}
