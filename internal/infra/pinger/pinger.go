package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/skillcoder/platform-restarter/internal/infra/shutdown"
)

const (
	defaultPingTimeout      = 5 * time.Second
	defaultFailureThreshold = 3
)

// Service pings registered dependencies at a fixed interval and keeps their statistics.
// A pinger turns unhealthy after failureThreshold consecutive failures.
type Service struct {
	logger           *slog.Logger
	clock            clock.WithTicker
	interval         time.Duration
	failureThreshold int

	mu      sync.RWMutex
	pingers []Pinger
	stats   map[string]*Statistics

	started    atomic.Bool
	inShutdown atomic.Bool
	ready      chan struct{}
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// New creates a new pinger service. A non-positive failureThreshold uses the default.
func New(
	logger *slog.Logger,
	clk clock.WithTicker,
	interval time.Duration,
	failureThreshold int,
) *Service {
	if failureThreshold <= 0 {
		failureThreshold = defaultFailureThreshold
	}

	return &Service{
		logger:           logger,
		clock:            clk,
		interval:         interval,
		failureThreshold: failureThreshold,
		stats:            make(map[string]*Statistics),
		ready:            make(chan struct{}),
		stopCh:           make(chan struct{}),
		doneCh:           make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

// Name returns the name of the pinger service component
func (s *Service) Name() string {
	return "pinger-service"
}

// Register adds a pinger. Pingers registered after Start join the next round.
func (s *Service) Register(pinger Pinger) error {
	if pinger == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := pinger.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stats[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	s.pingers = append(s.pingers, pinger)
	s.stats[name] = &Statistics{Healthy: true}

	s.logger.Info("pinger registered", "name", name)

	return nil
}

// Start pings once, closes Ready, then keeps pinging every interval until ctx is done
// or Shutdown is called.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	go s.run(ctx)

	return nil
}

// Ready returns a channel that is closed after the first round of pings.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown stops the ping loop and waits for the current round to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	close(s.stopCh)

	if !s.started.Load() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "pinger loop exited")
	}

	return nil
}

// GetStats returns the statistics of one pinger.
func (s *Service) GetStats(name string) (Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[name]
	if !ok {
		return Statistics{}, fmt.Errorf("get stats: %w: %s", ErrPingerNotFound, name)
	}

	return *stats, nil
}

// GetAllStats returns a copy of every pinger's statistics.
func (s *Service) GetAllStats() map[string]Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Statistics, len(s.stats))
	for name, stats := range s.stats {
		out[name] = *stats
	}

	return out
}

// Healthy is true when no pinger crossed the failure threshold.
func (s *Service) Healthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stats := range s.stats {
		if !stats.Healthy {
			return false
		}
	}

	return true
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "pinger-run")

	s.pingAll(ctx, logger)
	close(s.ready)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			s.pingAll(ctx, logger)
		case <-s.stopCh:
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}

// pingAll runs every pinger concurrently and waits for all of them.
func (s *Service) pingAll(ctx context.Context, logger *slog.Logger) {
	s.mu.RLock()
	pingers := append([]Pinger(nil), s.pingers...)
	s.mu.RUnlock()

	var group errgroup.Group

	for _, p := range pingers {
		group.Go(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
			defer cancel()

			start := s.clock.Now()
			err := p.Ping(pingCtx)
			latency := s.clock.Since(start)

			s.record(p.Name(), latency, err)

			if err != nil {
				logger.WarnContext(ctx, "pinger error",
					"name", p.Name(),
					"latency", latency,
					"reason", err,
				)
			}

			return nil
		})
	}

	_ = group.Wait()
}

func (s *Service) record(name string, latency time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.stats[name]
	if !ok {
		return
	}

	stats.record(s.clock.Now(), latency, err, s.failureThreshold)
}
