package restarter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

func TestReport(t *testing.T) {
	t.Parallel()

	report := &restarter.Report{
		StartedAt:  testEpoch,
		FinishedAt: testEpoch.Add(time.Minute),
		Phases: []restarter.PhaseReport{
			{
				Phase: restarter.PhaseScaleDown,
				Tier:  "a",
				Results: []restarter.Result{
					{Ref: refX, Outcome: restarter.Success()},
				},
			},
			{
				Phase: restarter.PhaseScaleDown,
				Tier:  "b",
				Results: []restarter.Result{
					{Ref: refY, Outcome: restarter.Failed("boom")},
					{
						Ref:           refZ,
						Outcome:       restarter.Success(),
						ClaimWarnings: []restarter.ClaimWarning{{Claim: claimZ, Reason: "forbidden"}},
					},
				},
			},
			{
				Phase: restarter.PhaseScaleUp,
				Tier:  "a",
				Results: []restarter.Result{
					{Ref: refX, Outcome: restarter.Skipped("not found")},
				},
			},
		},
		Gate: restarter.GateResult{Ref: refX, Verdict: restarter.VerdictReady},
	}

	require.Len(t, report.Results(restarter.PhaseScaleDown), 3)
	require.Len(t, report.Results(restarter.PhaseScaleUp), 1)
	require.Len(t, report.Failed(), 1)
	require.Equal(t, refY, report.Failed()[0].Ref)
	require.Len(t, report.ClaimWarnings(), 1)
	require.False(t, report.AllSucceeded())
	require.True(t, report.GateReady())
	require.Equal(t, restarter.StatusLineComplete, report.StatusLine())
	require.Equal(t, time.Minute, report.Duration())

	report.Gate.Verdict = restarter.VerdictTimedOut
	require.Equal(t, restarter.StatusLineGateTimedOut, report.StatusLine())
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Success", restarter.Success().String())
	require.Equal(t, "Failed(boom)", restarter.Failed("boom").String())
	require.Equal(t, "Skipped(dry run)", restarter.Skipped("dry run").String())
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	got, err := restarter.ParseOrder("reversed")
	require.NoError(t, err)
	require.Equal(t, restarter.OrderReversed, got)

	_, err = restarter.ParseOrder("random")
	require.Error(t, err)
}
