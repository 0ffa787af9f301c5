package restarter

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

// Config holds the run timing and dispatch settings.
type Config struct {
	SettleInterval      time.Duration
	FinalSettleInterval time.Duration
	// CommandTimeout bounds every single cluster call; 0 leaves calls unbounded.
	CommandTimeout time.Duration
	// MaxParallel limits concurrent scale commands within a tier; 0 is unlimited.
	MaxParallel  int
	RestoreOrder Order
	DryRun       bool
}

// Service runs the phased restart of a topology against the cluster workload port.
type Service struct {
	logger     *slog.Logger
	cluster    ClusterWorkload
	clock      Clock
	progress   Progress
	topo       *topology.Topology
	cfg        Config
	newRunID   func() string
	running    atomic.Bool
	inShutdown atomic.Bool
	ready      chan struct{}
	doneCh     chan struct{}
}

// New creates a new restarter service.
func New(
	logger *slog.Logger,
	cluster ClusterWorkload,
	clock Clock,
	progress Progress,
	topo *topology.Topology,
	cfg Config,
) *Service {
	if cfg.RestoreOrder == "" {
		cfg.RestoreOrder = OrderDeclared
	}

	return &Service{
		logger:   logger,
		cluster:  cluster,
		clock:    clock,
		progress: progress,
		topo:     topo,
		cfg:      cfg,
		newRunID: uuid.NewString,
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Name returns the name of the service component
func (s *Service) Name() string {
	return serviceName
}

// Ready returns a channel that is closed once the scheduled loop is running.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown waits for the scheduled loop to exit.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "restarter service is already shutting down, skipping shutdown")

		return nil
	}

	select {
	case <-s.ready:
	default:
		// never started
		return nil
	}

	s.logger.InfoContext(ctx, "shutting down restarter service")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before restarter loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "restarter loop exited")
	}

	return nil
}

// commandContext bounds a single cluster call by the configured command timeout.
func (s *Service) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.cfg.CommandTimeout)
}

// wait is the non-cancellable interval wait.
func (s *Service) wait(d time.Duration) {
	if d <= 0 {
		return
	}

	s.clock.Sleep(d)
}
