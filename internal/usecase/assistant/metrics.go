package assistant

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oficina",
			Subsystem: "assistant",
			Name:      "tool_calls_total",
			Help:      "Tool executions requested by the model",
		},
		[]string{"tool", "outcome"}, // "ok", "error"
	)

	completionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oficina",
			Subsystem: "assistant",
			Name:      "completion_calls_total",
			Help:      "Calls to the completion endpoint",
		},
		[]string{"status"},
	)

	completionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "oficina",
			Subsystem: "assistant",
			Name:      "completion_duration_seconds",
			Help:      "Duration of completion calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	orchestrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oficina",
			Subsystem: "assistant",
			Name:      "orchestrations_total",
			Help:      "Chat orchestrations by terminal state",
		},
		[]string{"result"}, // "done", "round_limit", "error"
	)

	creditDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oficina",
			Subsystem: "assistant",
			Name:      "credit_decisions_total",
			Help:      "Usage meter decisions",
		},
		[]string{"decision"}, // "unmetered", "allowed", "denied"
	)
)
