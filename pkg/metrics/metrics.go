package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service counters. One instance per process,
// registered on a private registry exposed at /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	OrdersCreated   *prometheus.CounterVec
	OrdersCompleted *prometheus.CounterVec
	OrdersDeleted   *prometheus.CounterVec
	RevenueQepik    prometheus.Counter
	BackendFailures *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	return &Metrics{
		Registry: registry,
		OrdersCreated: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquadesk_orders_created_total",
				Help: "Orders created, by source",
			},
			[]string{"source"},
		),
		OrdersCompleted: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquadesk_orders_completed_total",
				Help: "Orders completed, by payment method",
			},
			[]string{"payment_method"},
		),
		OrdersDeleted: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquadesk_orders_deleted_total",
				Help: "Orders deleted, by source",
			},
			[]string{"source"},
		),
		RevenueQepik: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "aquadesk_revenue_qepik_total",
				Help: "Completed-order revenue in qepik",
			},
		),
		BackendFailures: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "aquadesk_backend_failures_total",
				Help: "Upstream backend call failures, by operation",
			},
			[]string{"operation"},
		),
		HTTPDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aquadesk_http_request_duration_seconds",
				Help:    "REST API request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}
