package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the checkout counters. Construct once per process; tests
// pass a fresh prometheus.NewRegistry to avoid duplicate registration.
type Metrics struct {
	CheckoutAttempts     prometheus.Counter
	CheckoutFailures     *prometheus.CounterVec
	CheckoutDuration     prometheus.Histogram
	Compensations        prometheus.Counter
	CompensationFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CheckoutAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout attempts.",
		}),
		CheckoutFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_failures_total",
			Help: "Checkout failures by reason.",
		}, []string{"reason"}),
		CheckoutDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "checkout_duration_seconds",
			Help:    "End-to-end checkout duration.",
			Buckets: prometheus.DefBuckets,
		}),
		Compensations: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_compensations_total",
			Help: "Inventory RELEASE operations issued as compensation.",
		}),
		CompensationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_compensation_failures_total",
			Help: "Inventory RELEASE operations that failed and need out-of-band reconciliation.",
		}),
	}
}
