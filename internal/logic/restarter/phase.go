package restarter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/skillcoder/platform-restarter/internal/infra/metrics"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

// ExecutePhase issues one scale command per resource of the tier, concurrently, and
// returns once every command has returned. Results keep the tier's declaration order.
// Individual failures are recorded and never stop the other commands.
func (s *Service) ExecutePhase(
	ctx context.Context,
	phase Phase,
	tier topology.Tier,
	target Target,
) []Result {
	logger := s.logger.With("restarter", "ExecutePhase", "phase", phase, "tier", tier.Name)

	results := make([]Result, len(tier.Resources))

	var g errgroup.Group

	if s.cfg.MaxParallel > 0 {
		g.SetLimit(s.cfg.MaxParallel)
	}

	for i := range tier.Resources {
		res := tier.Resources[i]

		g.Go(func() error {
			results[i] = s.scaleResource(ctx, logger, phase, tier.Name, res, target.replicasFor(res))

			return nil
		})
	}

	// scaleResource never returns an error to the group
	_ = g.Wait()

	return results
}

func (s *Service) scaleResource(
	ctx context.Context,
	logger *slog.Logger,
	phase Phase,
	tierName string,
	res topology.Resource,
	replicas int32,
) Result {
	logger = logger.With("resource", res.Ref.String(), "replicas", replicas)
	start := s.clock.Now()

	result := Result{
		Ref:      res.Ref,
		Replicas: replicas,
	}

	if s.cfg.DryRun {
		logger.InfoContext(ctx, "dry run, not scaling")

		result.Outcome = Skipped("dry run")
		metrics.RecordScaleCommand(string(phase), tierName, string(OutcomeSkipped))

		return result
	}

	err := s.scaleCommand(ctx, res.Ref, replicas)

	result.Duration = s.clock.Since(start)

	switch {
	case err == nil:
		result.Outcome = Success()

		logger.DebugContext(ctx, "workload scaled", "duration", result.Duration)
	case isNotFound(err):
		result.Outcome = Skipped("not found")

		logger.WarnContext(ctx, "workload not found, skipping")
	default:
		result.Outcome = Failed(err.Error())

		logger.ErrorContext(ctx, "scale workload failed", "reason", err)
	}

	metrics.RecordScaleCommand(string(phase), tierName, string(result.Outcome.Status))

	if phase == PhaseScaleDown && len(res.ResetClaims) > 0 {
		result.ClaimWarnings = s.resetClaims(ctx, logger, res, result.Outcome)
	}

	return result
}

func (s *Service) scaleCommand(ctx context.Context, ref topology.ResourceRef, replicas int32) error {
	cmdCtx, cancel := s.commandContext(ctx)
	defer cancel()

	err := s.cluster.ScaleCommand(cmdCtx, ref, replicas)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScale, err)
	}

	return nil
}

// resetClaims deletes the persisted state of a workload that was scaled to zero.
// Failures only produce warnings; the restore proceeds with whatever data is left.
func (s *Service) resetClaims(
	ctx context.Context,
	logger *slog.Logger,
	res topology.Resource,
	scaled Outcome,
) []ClaimWarning {
	if scaled.Status != OutcomeSuccess {
		warnings := make([]ClaimWarning, 0, len(res.ResetClaims))
		for _, claim := range res.ResetClaims {
			warnings = append(warnings, ClaimWarning{
				Claim:  claim,
				Reason: "not deleted: workload was not scaled down",
			})
		}

		logger.WarnContext(ctx, "skipping storage reset, workload was not scaled down",
			"claims", res.ResetClaims,
		)

		return warnings
	}

	var warnings []ClaimWarning

	for _, claim := range res.ResetClaims {
		err := s.deleteClaim(ctx, res.Ref.Namespace, claim)

		switch {
		case err == nil:
			logger.InfoContext(ctx, "storage claim deleted", "claim", claim)
			metrics.RecordClaimReset(string(OutcomeSuccess))
		case isNotFound(err):
			logger.DebugContext(ctx, "storage claim already absent", "claim", claim)
			metrics.RecordClaimReset(string(OutcomeSkipped))
		default:
			logger.WarnContext(ctx, "storage claim deletion failed, stale data may persist",
				"claim", claim,
				"reason", err,
			)
			metrics.RecordClaimReset(string(OutcomeFailed))

			warnings = append(warnings, ClaimWarning{Claim: claim, Reason: err.Error()})
		}
	}

	return warnings
}

func (s *Service) deleteClaim(ctx context.Context, namespace, claim string) error {
	cmdCtx, cancel := s.commandContext(ctx)
	defer cancel()

	err := s.cluster.DeleteStorageClaimCommand(cmdCtx, namespace, claim)
	if err != nil {
		return fmt.Errorf("%w %s/%s: %w", ErrDeleteClaim, namespace, claim, err)
	}

	return nil
}

func isNotFound(err error) bool {
	var target notFound

	return errors.As(err, &target)
}
