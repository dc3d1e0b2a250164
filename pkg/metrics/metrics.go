// Package metrics exposes Prometheus counters for the storefront
// and an optional /metrics HTTP server.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/shopping/pkg/logger"
)

// Metrics holds the storefront metric set.
type Metrics struct {
	HTTPRequestsTotal   prometheus.Counter
	HTTPRequestDuration prometheus.Histogram

	CartAddsTotal          prometheus.Counter
	CartRemovesTotal       prometheus.Counter
	StockReservationFailed prometheus.Counter

	OrdersCreatedTotal   prometheus.Counter
	OrdersCancelledTotal prometheus.Counter
	CheckoutFailedTotal  prometheus.Counter
}

// New builds the metric set under the shopping namespace.
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		CartAddsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "cart_adds_total",
			Help:      "Items added to carts",
		}),
		CartRemovesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "cart_removes_total",
			Help:      "Items removed from carts",
		}),
		StockReservationFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "stock_reservation_failed_total",
			Help:      "Cart adds rejected for insufficient stock",
		}),
		OrdersCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "orders_created_total",
			Help:      "Orders created",
		}),
		OrdersCancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "orders_cancelled_total",
			Help:      "Orders cancelled",
		}),
		CheckoutFailedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopping",
			Subsystem: serviceName,
			Name:      "checkout_failed_total",
			Help:      "Checkout attempts that failed",
		}),
	}
}

// Register adds every metric to the given registry.
func (m *Metrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CartAddsTotal,
		m.CartRemovesTotal,
		m.StockReservationFailed,
		m.OrdersCreatedTotal,
		m.OrdersCancelledTotal,
		m.CheckoutFailedTotal,
	)
}

// StartHTTPServer serves the registry on its own port. It returns the
// server so the caller can shut it down.
func StartHTTPServer(reg *prometheus.Registry, port int, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		logger.Info(context.Background(), "metrics server started", "port", port, "path", path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(context.Background(), "metrics server failed", "error", err)
		}
	}()

	return srv
}
