package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the parcel lifecycle
var (
	LifecycleOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_lifecycle_operations_total",
			Help: "Total number of lifecycle operations by operation and error kind (empty on success)",
		},
		[]string{"operation", "kind"},
	)

	LifecycleOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parcel_lifecycle_operation_duration_seconds",
			Help:    "Duration of lifecycle operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	SettlementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_settlements_total",
			Help: "Total number of payment confirmations by outcome (settled, already_settled, unpaid)",
		},
		[]string{"outcome"},
	)

	PartialFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_lifecycle_partial_failures_total",
			Help: "Total number of transitions that failed after applying some writes",
		},
		[]string{"operation", "failed_step", "compensated"},
	)

	RepairsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parcel_lifecycle_repairs_total",
			Help: "Total number of records repaired by the background jobs",
		},
		[]string{"job"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(LifecycleOperationsTotal)
	prometheus.MustRegister(LifecycleOperationDuration)
	prometheus.MustRegister(SettlementsTotal)
	prometheus.MustRegister(PartialFailuresTotal)
	prometheus.MustRegister(RepairsTotal)
}
