package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's Prometheus collectors.
type MetricsManager struct {
	Registry             *prometheus.Registry
	UsersRegisteredTotal prometheus.Counter
	ProductsCreatedTotal prometheus.Counter
	LikesToggledTotal    *prometheus.CounterVec
	CommentsCreatedTotal prometheus.Counter
	APIErrorsTotal       *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// NewMetricsManager registers all collectors on a private registry.
func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		UsersRegisteredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Total number of registered users.",
		}),
		ProductsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_created_total",
			Help:      "Total number of listings created.",
		}),
		LikesToggledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likes_toggled_total",
			Help:      "Total number of like toggles by resulting state.",
		}, []string{"liked"}),
		CommentsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Total number of comments and replies posted.",
		}),
		APIErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of API errors by method.",
		}, []string{"method", "error_type"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		m.UsersRegisteredTotal,
		m.ProductsCreatedTotal,
		m.LikesToggledTotal,
		m.CommentsCreatedTotal,
		m.APIErrorsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *MetricsManager) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordError counts a failed API call by method and error type.
func (m *MetricsManager) RecordError(method, errorType string) {
	if m == nil {
		return
	}
	m.APIErrorsTotal.WithLabelValues(method, errorType).Inc()
}

// StartMetricsServer serves /metrics on its own port. Blocks until the server stops.
func StartMetricsServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

func (m *MetricsManager) IncUsersRegistered() {
	if m != nil {
		m.UsersRegisteredTotal.Inc()
	}
}

func (m *MetricsManager) IncProductsCreated() {
	if m != nil {
		m.ProductsCreatedTotal.Inc()
	}
}

func (m *MetricsManager) IncLikeToggled(liked bool) {
	if m != nil {
		m.LikesToggledTotal.WithLabelValues(strconv.FormatBool(liked)).Inc()
	}
}

func (m *MetricsManager) IncCommentsCreated() {
	if m != nil {
		m.CommentsCreatedTotal.Inc()
	}
}
