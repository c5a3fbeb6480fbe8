package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	CartOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"operation"})

	OrderHandoffs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_handoffs_total",
		Help: "Orders handed off to WhatsApp.",
	})
)

// RegisterSessionGauge exposes the number of live cart sessions
func RegisterSessionGauge(count func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "storefront_active_sessions",
		Help: "Cart sessions currently held in memory.",
	}, func() float64 { return float64(count()) })
}
