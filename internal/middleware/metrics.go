package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InitMetrics creates the Prometheus HTTP middleware for the given
// service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the Prometheus middleware as a fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

// StoreOps counts key-value store operations by backend and operation.
var StoreOps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lostfound_store_operations_total",
		Help: "Total key-value store operations",
	},
	[]string{"backend", "op"},
)

// StoreErrors counts key-value store operation failures by backend and operation.
var StoreErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lostfound_store_errors_total",
		Help: "Total key-value store operation failures",
	},
	[]string{"backend", "op"},
)
