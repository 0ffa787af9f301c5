// Package console prints restart progress and the final report for an operator terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

const runIDPrefixLen = 8

// Printer writes one line per progress event and a table for the final report.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// New creates a new console printer.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

var _ restarter.Progress = (*Printer)(nil)

func (p *Printer) StateChanged(_ context.Context, runID string, state restarter.State) {
	switch state.Stage {
	case restarter.StageScaleDown:
		p.printf(runID, "scaling down tier %s", state.Tier)
	case restarter.StageScaleUp:
		p.printf(runID, "scaling up tier %s", state.Tier)
	case restarter.StageSettle, restarter.StageFinalSettle:
		p.printf(runID, "waiting (%s)", state.Stage)
	case restarter.StageVerify:
		p.printf(runID, "verifying critical resource")
	case restarter.StageInit:
		p.printf(runID, "checking cluster connectivity")
	case restarter.StageDone:
	}
}

func (p *Printer) PhaseCompleted(_ context.Context, runID string, phase restarter.PhaseReport) {
	for _, res := range phase.Results {
		p.printf(runID, "  %s -> %d replicas: %s", res.Ref, res.Replicas, res.Outcome)

		for _, warning := range res.ClaimWarnings {
			p.printf(runID, "    warning: claim %s %s", warning.Claim, warning.Reason)
		}
	}
}

func (p *Printer) GateResolved(_ context.Context, runID string, gate restarter.GateResult) {
	p.printf(runID, "critical resource %s: %s after %s (%d polls)",
		gate.Ref, gate.Verdict, gate.Elapsed.Round(time.Millisecond), gate.Polls)

	if gate.Verdict == restarter.VerdictReady {
		return
	}

	if gate.Message != "" {
		p.printf(runID, "  last status: %s", gate.Message)
	}

	for _, line := range strings.Split(gate.Diagnostics, "\n") {
		if line != "" {
			p.printf(runID, "  %s", line)
		}
	}
}

// RunCompleted renders the report table followed by the status line.
func (p *Printer) RunCompleted(_ context.Context, report *restarter.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.renderReport(report)
	fmt.Fprintln(p.out, report.StatusLine())
}

// RunAborted renders the partial report of an aborted run.
func (p *Printer) RunAborted(_ context.Context, report *restarter.Report, cause error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if report != nil {
		p.renderReport(report)
	}

	fmt.Fprintf(p.out, "restart aborted: %v\n", cause)
}

func (p *Printer) renderReport(report *restarter.Report) {
	table := tablewriter.NewWriter(p.out)
	table.Header("Phase", "Tier", "Resource", "Replicas", "Outcome", "Duration")

	for _, phase := range report.Phases {
		for _, res := range phase.Results {
			// a failed append only drops the row; the status line still follows
			_ = table.Append(
				string(phase.Phase),
				phase.Tier,
				res.Ref.String(),
				fmt.Sprint(res.Replicas),
				res.Outcome.String(),
				res.Duration.Round(time.Millisecond).String(),
			)
		}
	}

	if err := table.Render(); err != nil {
		fmt.Fprintf(p.out, "render report: %v\n", err)
	}

	if report.DryRun {
		fmt.Fprintln(p.out, "dry run: no workload was changed")
	}

	if failed := report.Failed(); len(failed) > 0 {
		refs := make([]string, 0, len(failed))
		for _, res := range failed {
			refs = append(refs, res.Ref.String())
		}

		fmt.Fprintf(p.out, "failed resources: %s\n", strings.Join(refs, ", "))
	}

	for _, warning := range report.ClaimWarnings() {
		fmt.Fprintf(p.out, "storage claim %s %s\n", warning.Claim, warning.Reason)
	}

	if report.Gate.Verdict != "" {
		fmt.Fprintf(p.out, "critical resource %s: %s in %s\n",
			report.Gate.Ref, report.Gate.Verdict, report.Gate.Elapsed.Round(time.Millisecond))
	}

	fmt.Fprintf(p.out, "run %s finished in %s\n", report.RunID, report.Duration().Round(time.Millisecond))
}

func (p *Printer) printf(runID, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "[%s] %s\n", shortID(runID), fmt.Sprintf(format, args...))
}

func shortID(runID string) string {
	if len(runID) > runIDPrefixLen {
		return runID[:runIDPrefixLen]
	}

	return runID
}
