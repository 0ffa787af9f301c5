package restarter

import (
	"context"
	"errors"
	"fmt"
)

// StartSchedule runs the restart at every occurrence of the cron spec until ctx is done.
func (s *Service) StartSchedule(
	ctx context.Context,
	scheduler Scheduler,
	spec,
	tz string,
) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "restarter service is shutting down, skipping start")

		return nil
	}

	// fail fast on a malformed spec
	_, err := scheduler.NextAfter(spec, tz, s.clock.Now())
	if err != nil {
		return fmt.Errorf("schedule: %w", err)
	}

	go s.RunScheduleCommand(ctx, scheduler, spec, tz)

	return nil
}

// RunScheduleCommand blocks, waiting for the next occurrence and running the restart.
// Run errors are logged and the loop continues with the next occurrence.
func (s *Service) RunScheduleCommand(
	ctx context.Context,
	scheduler Scheduler,
	spec,
	tz string,
) {
	defer close(s.doneCh)

	logger := s.logger.With("restarter", "RunScheduleCommand", "schedule", spec)

	close(s.ready)

	for {
		now := s.clock.Now()

		next, err := scheduler.NextAfter(spec, tz, now)
		if err != nil {
			logger.ErrorContext(ctx, "compute next restart", "reason", err)

			return
		}

		logger.InfoContext(ctx, "next restart scheduled", "at", next, "in", next.Sub(now))

		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating restart schedule loop")

			return
		case <-s.clock.After(next.Sub(now)):
		}

		_, err = s.Run(ctx)

		switch {
		case err == nil:
		case errors.Is(err, ErrRunAborted) && ctx.Err() != nil:
			logger.InfoContext(ctx, "terminating restart schedule loop")

			return
		default:
			logger.ErrorContext(ctx, "scheduled restart failed", "reason", err)
		}
	}
}
