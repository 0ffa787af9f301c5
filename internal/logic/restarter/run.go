package restarter

import (
	"context"
	"fmt"

	"github.com/skillcoder/platform-restarter/internal/infra/metrics"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

// Run executes one full restart:
// Init -> ScaleDown(tiers) -> Settle -> ScaleUp(tiers) -> Verify -> FinalSettle -> Done.
//
// Per-resource failures and a timed-out gate are reported, not returned. An error is
// returned only when the cluster is unreachable at Init (no scale command issued) or the
// context is cancelled between phases (partial report, no rollback).
func (s *Service) Run(ctx context.Context) (*Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	runID := s.newRunID()
	logger := s.logger.With("restarter", "Run", "runID", runID)
	b := newReportBuilder(runID, s.cfg.DryRun, s.clock.Now())

	s.enter(ctx, runID, State{Stage: StageInit})

	err := s.pingQuery(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "cluster workload api unreachable", "reason", err)
		metrics.RecordRun(metrics.RunResultUnreachable, s.clock.Since(b.report.StartedAt))

		err = fmt.Errorf("%w: %w", ErrClusterUnreachable, err)
		s.progress.RunAborted(ctx, nil, err)

		return nil, err
	}

	logger.InfoContext(ctx, "starting restart",
		"tiers", len(s.topo.Tiers()),
		"resources", s.topo.Len(),
		"dryRun", s.cfg.DryRun,
		"restoreOrder", s.cfg.RestoreOrder,
	)

	err = s.runPhase(ctx, runID, b, StageScaleDown, PhaseScaleDown, s.topo.Tiers(), Replicas(0))
	if err != nil {
		return s.abort(ctx, b, err)
	}

	s.enter(ctx, runID, State{Stage: StageSettle})
	s.wait(s.cfg.SettleInterval)

	err = s.runPhase(ctx, runID, b, StageScaleUp, PhaseScaleUp, s.restoreTiers(), RestorePlanReplicas)
	if err != nil {
		return s.abort(ctx, b, err)
	}

	s.enter(ctx, runID, State{Stage: StageVerify})

	gate := s.topo.Gate()
	gateResult := s.AwaitReady(ctx, gate.Ref, gate.Timeout, gate.PollInterval)
	b.setGate(gateResult)
	s.progress.GateResolved(ctx, runID, gateResult)

	if ctx.Err() != nil {
		return s.abort(ctx, b, ctx.Err())
	}

	s.enter(ctx, runID, State{Stage: StageFinalSettle})
	s.wait(s.cfg.FinalSettleInterval)

	s.enter(ctx, runID, State{Stage: StageDone})

	report := b.build(s.clock.Now())

	metrics.RecordRun(runResult(report), report.Duration())
	logger.InfoContext(ctx, report.StatusLine(),
		"duration", report.Duration(),
		"failed", len(report.Failed()),
		"gate", report.Gate.Verdict,
	)
	s.progress.RunCompleted(ctx, report)

	return report, nil
}

// runPhase scales every tier in order. Tier N+1 starts only after tier N has joined.
func (s *Service) runPhase(
	ctx context.Context,
	runID string,
	b *reportBuilder,
	stage Stage,
	phase Phase,
	tiers []topology.Tier,
	target Target,
) error {
	for i := range tiers {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.enter(ctx, runID, State{Stage: stage, Tier: tiers[i].Name})

		phaseReport := PhaseReport{
			Phase:   phase,
			Tier:    tiers[i].Name,
			Results: s.ExecutePhase(ctx, phase, tiers[i], target),
		}

		b.addPhase(phaseReport)
		s.progress.PhaseCompleted(ctx, runID, phaseReport)
	}

	return nil
}

func (s *Service) restoreTiers() []topology.Tier {
	if s.cfg.RestoreOrder == OrderReversed {
		return s.topo.ReversedTiers()
	}

	return s.topo.Tiers()
}

func (s *Service) abort(ctx context.Context, b *reportBuilder, cause error) (*Report, error) {
	report := b.build(s.clock.Now())

	s.logger.ErrorContext(ctx, "restart aborted, cluster state may be partial",
		"runID", report.RunID,
		"phasesCompleted", len(report.Phases),
		"reason", cause,
	)
	metrics.RecordRun(metrics.RunResultAborted, report.Duration())
	s.progress.RunAborted(ctx, report, cause)

	return report, fmt.Errorf("%w: %w", ErrRunAborted, cause)
}

func (s *Service) enter(ctx context.Context, runID string, state State) {
	s.logger.DebugContext(ctx, "entering state", "runID", runID, "state", state.String())
	s.progress.StateChanged(ctx, runID, state)
}

func (s *Service) pingQuery(ctx context.Context) error {
	cmdCtx, cancel := s.commandContext(ctx)
	defer cancel()

	return s.cluster.PingQuery(cmdCtx)
}

func runResult(report *Report) string {
	switch {
	case !report.GateReady():
		return metrics.RunResultGateTimedOut
	case len(report.Failed()) > 0:
		return metrics.RunResultPartialFailure
	default:
		return metrics.RunResultSucceeded
	}
}
