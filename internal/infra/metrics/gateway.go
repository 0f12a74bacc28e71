package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		providerCallsTotal,
		providerCallDuration,
		operationsTotal,
	)
}

// Provider call outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeDeclined = "declined"
	OutcomeError    = "error"
)

var (
	// One sample per HTTP call to the processor.
	// action: login|setup|sale|capture|refund|void
	providerCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_provider_calls_total",
			Help: "Calls to the payment processor by action and outcome.",
		},
		[]string{"provider", "action", "outcome"},
	)

	providerCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_provider_call_duration_seconds",
			Help:    "Round trip time of payment processor calls in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider", "action"},
	)

	// One sample per logical operation served by the HTTP facade.
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_operations_total",
			Help: "Logical gateway operations by account, operation and outcome.",
		},
		[]string{"account", "operation", "outcome"},
	)
)

func ObserveProviderCall(provider, action, outcome string, d time.Duration) {
	providerCallsTotal.WithLabelValues(norm(provider), norm(action), norm(outcome)).Inc()
	providerCallDuration.WithLabelValues(norm(provider), norm(action)).Observe(d.Seconds())
}

func IncOperation(account, operation, outcome string) {
	operationsTotal.WithLabelValues(norm(account), norm(operation), norm(outcome)).Inc()
}
