// Package observability registers prometheus metrics for the client sync
// layer and the dev gateway server.
package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	syncTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolchat_sync_ticks_total",
			Help: "Total number of periodic refresh ticks performed by the sync scheduler.",
		},
	)
	storageErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schoolchat_storage_errors_total",
			Help: "Total number of storage gateway failures, by logical operation.",
		},
		[]string{"op"},
	)
	messagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolchat_messages_sent_total",
			Help: "Total number of messages appended locally.",
		},
	)
	fanoutRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schoolchat_fanout_retries_total",
			Help: "Total number of retried best-effort halves of two-party writes.",
		},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schoolchat_gateway_http_requests_total",
			Help: "Total number of HTTP requests processed by the gateway server.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schoolchat_gateway_http_request_duration_seconds",
			Help:    "Gateway HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		syncTicksTotal,
		storageErrorsTotal,
		messagesSentTotal,
		fanoutRetriesTotal,
		httpRequestsTotal,
		httpRequestDuration,
	)
}

// HTTPMetricsMiddleware records request counts and latencies for the
// gateway server.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncSyncTick() {
	syncTicksTotal.Inc()
}

func IncStorageError(op string) {
	storageErrorsTotal.WithLabelValues(op).Inc()
}

func IncMessageSent() {
	messagesSentTotal.Inc()
}

func IncFanoutRetry() {
	fanoutRetriesTotal.Inc()
}
