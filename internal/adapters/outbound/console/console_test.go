package console_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/platform-restarter/internal/adapters/outbound/console"
	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

const runID = "0f8c2a4e-1111-2222-3333-444455556666"

var (
	refX = topology.ResourceRef{Kind: topology.KindDeployment, Name: "svc-x", Namespace: "ricplt"}
	refZ = topology.ResourceRef{Kind: topology.KindStatefulSet, Name: "svc-z", Namespace: "nonrtric"}
)

func newReport(verdict restarter.Verdict) *restarter.Report {
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	return &restarter.Report{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: started.Add(15 * time.Second),
		Phases: []restarter.PhaseReport{
			{
				Phase: restarter.PhaseScaleDown,
				Tier:  "a",
				Results: []restarter.Result{
					{Ref: refX, Replicas: 0, Outcome: restarter.Success()},
				},
			},
			{
				Phase: restarter.PhaseScaleDown,
				Tier:  "b",
				Results: []restarter.Result{{
					Ref:           refZ,
					Replicas:      0,
					Outcome:       restarter.Failed("denied"),
					ClaimWarnings: []restarter.ClaimWarning{{Claim: "data-svc-z-0", Reason: "not deleted"}},
				}},
			},
		},
		Gate: restarter.GateResult{Ref: refX, Verdict: verdict, Elapsed: 2 * time.Second, Polls: 3},
	}
}

func TestPrinter_Progress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	printer := console.New(&buf)
	ctx := t.Context()

	printer.StateChanged(ctx, runID, restarter.State{Stage: restarter.StageInit})
	printer.StateChanged(ctx, runID, restarter.State{Stage: restarter.StageScaleDown, Tier: "a"})
	printer.PhaseCompleted(ctx, runID, newReport(restarter.VerdictReady).Phases[1])
	printer.StateChanged(ctx, runID, restarter.State{Stage: restarter.StageSettle})
	printer.StateChanged(ctx, runID, restarter.State{Stage: restarter.StageDone})

	require.Equal(t, `[0f8c2a4e] checking cluster connectivity
[0f8c2a4e] scaling down tier a
[0f8c2a4e]   statefulset/nonrtric/svc-z -> 0 replicas: Failed(denied)
[0f8c2a4e]     warning: claim data-svc-z-0 not deleted
[0f8c2a4e] waiting (Settle)
`, buf.String())
}

func TestPrinter_GateResolved(t *testing.T) {
	t.Parallel()

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		console.New(&buf).GateResolved(t.Context(), runID, newReport(restarter.VerdictReady).Gate)
		require.Equal(t, "[0f8c2a4e] critical resource deployment/ricplt/svc-x: Ready after 2s (3 polls)\n", buf.String())
	})

	t.Run("timed out with diagnostics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		gate := restarter.GateResult{
			Ref:         refX,
			Verdict:     restarter.VerdictTimedOut,
			Elapsed:     5 * time.Second,
			Polls:       6,
			Message:     "0/1 replicas available",
			Diagnostics: "Deployment ricplt/svc-x\nEvents: <none>",
		}

		console.New(&buf).GateResolved(t.Context(), runID, gate)
		require.Equal(t, `[0f8c2a4e] critical resource deployment/ricplt/svc-x: TimedOut after 5s (6 polls)
[0f8c2a4e]   last status: 0/1 replicas available
[0f8c2a4e]   Deployment ricplt/svc-x
[0f8c2a4e]   Events: <none>
`, buf.String())
	})
}

func TestPrinter_RunCompleted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		giveGate   restarter.Verdict
		wantStatus string
	}{
		{name: "gate ready", giveGate: restarter.VerdictReady, wantStatus: restarter.StatusLineComplete},
		{name: "gate timed out", giveGate: restarter.VerdictTimedOut, wantStatus: restarter.StatusLineGateTimedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			console.New(&buf).RunCompleted(t.Context(), newReport(tt.giveGate))

			out := buf.String()
			require.Contains(t, out, "deployment/ricplt/svc-x")
			require.Contains(t, out, "Failed(denied)")
			require.Contains(t, out, "failed resources: statefulset/nonrtric/svc-z\n")
			require.Contains(t, out, "storage claim data-svc-z-0 not deleted\n")
			require.Contains(t, out, "run "+runID+" finished in 15s\n")
			require.True(t, bytes.HasSuffix(buf.Bytes(), []byte(tt.wantStatus+"\n")))
		})
	}
}

func TestPrinter_RunAborted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	console.New(&buf).RunAborted(t.Context(), nil, errors.New("context canceled"))
	require.Equal(t, "restart aborted: context canceled\n", buf.String())
}

func TestPrinter_Plan(t *testing.T) {
	t.Parallel()

	refY := topology.ResourceRef{Kind: topology.KindDeployment, Name: "svc-y", Namespace: "nonrtric"}

	topo, err := topology.New([]topology.Tier{
		{Name: "a", Resources: []topology.Resource{{Ref: refX, Replicas: 1}}},
		{Name: "b", Resources: []topology.Resource{
			{Ref: refY, Replicas: 2},
			{Ref: refZ, Replicas: 1, ResetClaims: []string{"data-svc-z-0"}},
		}},
	}, topology.Gate{Ref: refX, Timeout: 5 * time.Minute, PollInterval: 5 * time.Second})
	require.NoError(t, err)

	var buf bytes.Buffer

	next := time.Date(2026, 10, 25, 3, 30, 0, 0, time.UTC)
	require.NoError(t, console.New(&buf).Plan(topo, restarter.OrderReversed, []time.Time{next}))

	out := buf.String()
	require.Contains(t, out, "statefulset/nonrtric/svc-z")
	require.Contains(t, out, "data-svc-z-0")
	require.Contains(t, out, "scale-down order: a -> b\n")
	require.Contains(t, out, "scale-up order: b -> a\n")
	require.Contains(t, out, "critical resource: deployment/ricplt/svc-x (timeout 5m0s, poll every 5s)\n")
	require.Contains(t, out, "next run: 2026-10-25T03:30:00Z\n")
}
