package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community_currency",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "community_currency",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path"},
	)

	ledgerOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "community_currency",
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Ledger operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	transferredVolume = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "community_currency",
			Subsystem: "ledger",
			Name:      "transferred_amount_total",
			Help:      "Sum of successfully transferred amounts (approximate for very large values).",
		},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, ledgerOperations, transferredVolume)
}

// Handler exposes the registry over HTTP.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest observes one completed HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOperation counts a ledger operation; err selects the outcome label.
func RecordOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = apperrors.Kind(err)
	}
	ledgerOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordTransfer adds a successful transfer to the volume counter.
func RecordTransfer(amount decimal.Decimal) {
	transferredVolume.Add(amount.InexactFloat64())
}
