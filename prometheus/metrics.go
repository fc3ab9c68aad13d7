package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Registration counter
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workspace_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workspace_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Message counter by destination
	MessageCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workspace_messages_sent_total",
			Help: "Total number of messages sent",
		},
		[]string{"destination"}, // destination is "channel" or "dm"
	)

	// Channel creation counter
	ChannelCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workspace_channels_created_total",
			Help: "Total number of channels created",
		},
	)

	// DM creation counter
	DmCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workspace_dms_created_total",
			Help: "Total number of DMs created",
		},
	)

	// Standup counter by operation
	StandupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workspace_standup_operations_total",
			Help: "Total number of standup operations",
		},
		[]string{"operation"}, // operation can be "start", "send", "active"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workspace_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counter by class
	RequestErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workspace_request_errors_total",
			Help: "Total number of rejected requests",
		},
		[]string{"type"}, // type can be "validation", "authorization", "internal"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workspace_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Snapshot store operation duration
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workspace_store_operation_duration_seconds",
			Help:    "Duration of snapshot store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "view", "update", "clear"
	)
)

// Gauge metrics
var (
	// Active sessions
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "workspace_active_sessions",
			Help: "Number of currently active sessions",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "workspace_info",
			Help: "Information about the workspace service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(MessageCounter)
	prometheus.MustRegister(ChannelCreatedCounter)
	prometheus.MustRegister(DmCreatedCounter)
	prometheus.MustRegister(StandupCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RequestErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(StoreOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveSessionsGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackStoreOperation measures snapshot store operation durations
func TrackStoreOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StoreOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// IncreaseActiveSessions increments the active sessions gauge
func IncreaseActiveSessions() {
	ActiveSessionsGauge.Inc()
}

// DecreaseActiveSessions decrements the active sessions gauge
func DecreaseActiveSessions() {
	ActiveSessionsGauge.Dec()
}

// RemoveActiveSessions subtracts a batch of revoked sessions from the gauge,
// used when every session of an account is invalidated at once
func RemoveActiveSessions(count int) {
	if count > 0 {
		ActiveSessionsGauge.Sub(float64(count))
	}
}

// RecordRequestError records a rejected request by error class
func RecordRequestError(errorType string) {
	RequestErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordMessageSent records a sent message by destination
func RecordMessageSent(destination string) {
	MessageCounter.With(prometheus.Labels{"destination": destination}).Inc()
}

// RecordStandupOperation records a standup operation
func RecordStandupOperation(operation string) {
	StandupCounter.With(prometheus.Labels{"operation": operation}).Inc()
}
