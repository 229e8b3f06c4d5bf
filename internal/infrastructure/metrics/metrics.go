// Package metrics expone los contadores Prometheus del servicio. La única
// superficie instrumentada es la frontera con el backend ERP: cada pantalla
// es una llamada REST y ahí se concentra la latencia observable.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend métricas de llamadas al API REST del ERP.
type Backend struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewBackend registra las métricas en el registrador por defecto.
func NewBackend() *Backend {
	return &Backend{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Llamadas al backend ERP por método y estado HTTP.",
		}, []string{"method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duración de las llamadas al backend ERP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Observe registra una llamada completada. status 0 significa fallo de red.
func (b *Backend) Observe(method string, status int, elapsed time.Duration) {
	if b == nil {
		return
	}
	b.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	b.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
