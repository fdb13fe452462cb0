package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
	OrdersCreated        prometheus.Counter
	IntakeDuration       prometheus.Histogram
}

// NewMetrics создает новые метрики
func NewMetrics() *Metrics {
	return &Metrics{
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_errors_total",
			Help: "Total number of handler panics and errors",
		}),

		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegram_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),

		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_orders_created_total",
			Help: "Total number of orders created through the bot",
		}),

		IntakeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegram_bot_intake_duration_seconds",
			Help:    "Time between intake start and final confirmation",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600},
		}),
	}
}
