package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	ordersCommitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_orders_committed_total",
			Help: "Orders appended to the ledger, by checkout source.",
		},
		[]string{"source"},
	)

	orderAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_amount",
			Help:    "Grand total of committed orders.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	ordersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_cancelled_total",
			Help: "Orders removed from the ledger.",
		},
	)

	checkoutFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkout_failures_total",
			Help: "Blocked checkout steps, by error code.",
		},
		[]string{"reason"},
	)

	cartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart and buy-now writes, by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	catalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_catalog_products",
			Help: "Products held by the catalog after the last load.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func RecordOrderCommitted(source string, amount float64) {
	ordersCommitted.WithLabelValues(source).Inc()
	orderAmount.Observe(amount)
}

func RecordOrderCancelled() {
	ordersCancelled.Inc()
}

func RecordCheckoutFailure(reason string) {
	checkoutFailures.WithLabelValues(reason).Inc()
}

// RecordCartMutation counts a write attempt; err decides the outcome label.
func RecordCartMutation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}

	cartMutations.WithLabelValues(op, outcome).Inc()
}

func SetCatalogSize(n int) {
	catalogProducts.Set(float64(n))
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware must wrap the ServeMux directly: the mux records the matched
// pattern on the request it receives, and that is read back after serving.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {

			pathPattern := r.Pattern
			if pathPattern == "" {
				pathPattern = "unmatched"
			}

			duration := time.Since(start)
			statusCodeStr := strconv.Itoa(rw.statusCode)

			httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
