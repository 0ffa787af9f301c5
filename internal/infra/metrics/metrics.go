package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run results used as the "result" label of run metrics.
const (
	RunResultSucceeded      = "succeeded"
	RunResultPartialFailure = "partial_failure"
	RunResultGateTimedOut   = "gate_timed_out"
	RunResultAborted        = "aborted"
	RunResultUnreachable    = "unreachable"
)

var scaleCommandsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "platform_restarter_scale_commands_total",
		Help: "Total number of scale commands by phase, tier and outcome.",
	},
	[]string{"phase", "tier", "outcome"},
)

var claimResetsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "platform_restarter_claim_resets_total",
		Help: "Total number of storage claim deletions by outcome.",
	},
	[]string{"outcome"},
)

var gateWaitSeconds = promauto.With(prometheus.DefaultRegisterer).NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "platform_restarter_gate_wait_seconds",
		Help:    "Time spent waiting for the critical resource, by verdict.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	},
	[]string{"verdict"},
)

var runsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "platform_restarter_runs_total",
		Help: "Total number of restart runs by result.",
	},
	[]string{"result"},
)

var runDurationSeconds = promauto.With(prometheus.DefaultRegisterer).NewHistogram(
	prometheus.HistogramOpts{
		Name:    "platform_restarter_run_duration_seconds",
		Help:    "Wall time of restart runs, including settle intervals.",
		Buckets: prometheus.ExponentialBuckets(10, 2, 8),
	},
)

var lastRunTimestamp = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "platform_restarter_last_run_timestamp_seconds",
		Help: "Unix time of the last finished restart run.",
	},
)

// RecordScaleCommand counts one scale command result.
func RecordScaleCommand(phase, tier, outcome string) {
	scaleCommandsTotal.WithLabelValues(phase, tier, outcome).Inc()
}

// RecordClaimReset counts one storage claim deletion result.
func RecordClaimReset(outcome string) {
	claimResetsTotal.WithLabelValues(outcome).Inc()
}

// RecordGate observes the readiness gate wait.
func RecordGate(verdict string, elapsed time.Duration) {
	gateWaitSeconds.WithLabelValues(verdict).Observe(elapsed.Seconds())
}

// RecordRun counts a finished run and observes its duration.
func RecordRun(result string, duration time.Duration) {
	runsTotal.WithLabelValues(result).Inc()
	runDurationSeconds.Observe(duration.Seconds())
	lastRunTimestamp.SetToCurrentTime()
}
