package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gvcargo",
			Name:      "updates_processed_total",
			Help:      "Telegram updates by kind.",
		},
		[]string{"kind"},
	)

	ordersCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gvcargo",
			Name:      "orders_committed_total",
			Help:      "Orders committed to the durable store.",
		},
	)

	sheetsSync = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gvcargo",
			Name:      "sheets_sync_total",
			Help:      "Sheets mirror attempts by result.",
		},
		[]string{"result"},
	)

	sendErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gvcargo",
			Name:      "send_errors_total",
			Help:      "Outbound Telegram API errors.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(updatesProcessed, ordersCommitted, sheetsSync, sendErrors)
	})
}

// IncUpdate counts a processed update of the given kind.
func IncUpdate(kind string) {
	updatesProcessed.WithLabelValues(kind).Inc()
}

// IncOrderCommitted counts a committed order.
func IncOrderCommitted() {
	ordersCommitted.Inc()
}

// IncSheetsSync counts a mirror attempt result ("ok" or "error").
func IncSheetsSync(result string) {
	sheetsSync.WithLabelValues(result).Inc()
}

// IncSendError counts a failed outbound send.
func IncSendError() {
	sendErrors.Inc()
}
