package restarter

import (
	"context"
	"time"

	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

// ClusterWorkload is the port interface for the cluster workload manager.
// Implementations are provided by adapters in the outbound layer.
type ClusterWorkload interface {
	PingQuery(ctx context.Context) error

	ScaleCommand(
		ctx context.Context,
		ref topology.ResourceRef,
		replicas int32,
	) error

	GetAvailabilityQuery(
		ctx context.Context,
		ref topology.ResourceRef,
	) (Availability, error)

	DescribeQuery(
		ctx context.Context,
		ref topology.ResourceRef,
	) (string, error)

	DeleteStorageClaimCommand(
		ctx context.Context,
		namespace,
		claim string,
	) error
}

// Clock is the wall clock used for interval waits and gate polling.
// k8s.io/utils/clock.RealClock and its FakeClock both satisfy it.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(d time.Duration)
	After(d time.Duration) <-chan time.Time
}

// Progress receives run events as they happen.
type Progress interface {
	StateChanged(ctx context.Context, runID string, state State)
	PhaseCompleted(ctx context.Context, runID string, phase PhaseReport)
	GateResolved(ctx context.Context, runID string, gate GateResult)
	RunCompleted(ctx context.Context, report *Report)
	// RunAborted receives the partial report of a run stopped between phases,
	// or a nil report when the cluster was unreachable at Init.
	RunAborted(ctx context.Context, report *Report, cause error)
}

// Scheduler computes the next occurrence of a cron schedule.
type Scheduler interface {
	NextAfter(spec, tz string, after time.Time) (time.Time, error)
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}
