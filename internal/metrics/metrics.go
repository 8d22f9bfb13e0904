package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Colectores Prometheus del motor de inventario. Se registran una sola vez en
// el registro global; el endpoint /metrics los expone vía promhttp.
var (
	MovementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockwatch",
			Name:      "inventory_movements_total",
			Help:      "Movimientos de inventario confirmados, por razón.",
		},
		[]string{"reason"},
	)

	MutationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockwatch",
			Name:      "inventory_mutation_failures_total",
			Help:      "Mutaciones rechazadas, por tipo de error.",
		},
		[]string{"kind"},
	)

	AlertsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stockwatch",
			Name:      "low_stock_alerts_generated_total",
			Help:      "Alertas de stock bajo emitidas en todos los escaneos.",
		},
	)

	AlertScanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stockwatch",
			Name:      "low_stock_scan_duration_seconds",
			Help:      "Duración del escaneo de alertas por empresa.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	LowStockJobsQueued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stockwatch",
			Name:      "low_stock_jobs_queued_total",
			Help:      "Notificaciones de stock bajo encoladas en Redis.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		MovementsTotal,
		MutationFailures,
		AlertsGenerated,
		AlertScanDuration,
		LowStockJobsQueued,
	)
}
