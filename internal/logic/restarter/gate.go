package restarter

import (
	"context"
	"fmt"
	"time"

	"github.com/skillcoder/platform-restarter/internal/infra/metrics"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

// AwaitReady polls the availability of ref until it reports available or timeout elapses.
// The first poll happens immediately; the last sleep is clipped to the remaining budget,
// so the call never blocks longer than timeout. On timeout the workload description is
// attached as diagnostics, best-effort.
func (s *Service) AwaitReady(
	ctx context.Context,
	ref topology.ResourceRef,
	timeout,
	pollInterval time.Duration,
) GateResult {
	logger := s.logger.With("restarter", "AwaitReady", "resource", ref.String())

	start := s.clock.Now()
	deadline := start.Add(timeout)

	result := GateResult{Ref: ref}

	for {
		result.Polls++

		availability, err := s.availabilityQuery(ctx, ref, deadline.Sub(s.clock.Now()))

		switch {
		case err != nil:
			result.Message = err.Error()

			logger.DebugContext(ctx, "availability query failed", "reason", err)
		case availability.Available:
			result.Verdict = VerdictReady
			result.Message = availability.Message
			result.Elapsed = s.clock.Since(start)

			logger.InfoContext(ctx, "critical resource ready", "elapsed", result.Elapsed, "polls", result.Polls)
			metrics.RecordGate(string(result.Verdict), result.Elapsed)

			return result
		default:
			result.Message = availability.Message

			logger.DebugContext(ctx, "critical resource not available yet", "message", availability.Message)
		}

		remaining := deadline.Sub(s.clock.Now())
		if remaining <= 0 || ctx.Err() != nil {
			break
		}

		s.wait(min(pollInterval, remaining))
	}

	result.Verdict = VerdictTimedOut
	result.Elapsed = s.clock.Since(start)

	if ctx.Err() != nil {
		result.Message = fmt.Sprintf("aborted: %v", ctx.Err())
	}

	logger.WarnContext(ctx, "critical resource not ready within timeout",
		"timeout", timeout,
		"polls", result.Polls,
		"message", result.Message,
	)
	metrics.RecordGate(string(result.Verdict), result.Elapsed)

	description, err := s.describeQuery(ctx, ref)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch diagnostics", "reason", err)

		result.Diagnostics = fmt.Sprintf("diagnostics unavailable: %v", err)

		return result
	}

	result.Diagnostics = description

	return result
}

// availabilityQuery is bounded by the command timeout and by the gate time left,
// whichever is shorter.
func (s *Service) availabilityQuery(
	ctx context.Context,
	ref topology.ResourceRef,
	remaining time.Duration,
) (Availability, error) {
	timeout := remaining
	if s.cfg.CommandTimeout > 0 {
		timeout = min(timeout, s.cfg.CommandTimeout)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	availability, err := s.cluster.GetAvailabilityQuery(cmdCtx, ref)
	if err != nil {
		return Availability{}, fmt.Errorf("get availability: %w", err)
	}

	return availability, nil
}

func (s *Service) describeQuery(ctx context.Context, ref topology.ResourceRef) (string, error) {
	// runs even when the run context is already cancelled
	cmdCtx, cancel := s.commandContext(context.WithoutCancel(ctx))
	defer cancel()

	description, err := s.cluster.DescribeQuery(cmdCtx, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDescribe, err)
	}

	return description, nil
}
