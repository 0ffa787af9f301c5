package restarter

import (
	"slices"
	"time"
)

// Report is the immutable summary of one run.
type Report struct {
	RunID      string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Phases     []PhaseReport
	Gate       GateResult
}

// Results returns the results of every tier of the given phase, in execution order.
func (r *Report) Results(phase Phase) []Result {
	var out []Result

	for i := range r.Phases {
		if r.Phases[i].Phase == phase {
			out = append(out, r.Phases[i].Results...)
		}
	}

	return out
}

// Failed returns every failed scale result across all phases.
func (r *Report) Failed() []Result {
	var out []Result

	for i := range r.Phases {
		for _, res := range r.Phases[i].Results {
			if res.Outcome.Status == OutcomeFailed {
				out = append(out, res)
			}
		}
	}

	return out
}

// ClaimWarnings returns the storage claims that could not be reset.
func (r *Report) ClaimWarnings() []ClaimWarning {
	var out []ClaimWarning

	for i := range r.Phases {
		for _, res := range r.Phases[i].Results {
			out = append(out, res.ClaimWarnings...)
		}
	}

	return out
}

// AllSucceeded is true when no scale command failed and the gate is ready.
func (r *Report) AllSucceeded() bool {
	return len(r.Failed()) == 0 && r.GateReady()
}

func (r *Report) GateReady() bool {
	return r.Gate.Verdict == VerdictReady
}

func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// StatusLine is the final human readable verdict of the run.
func (r *Report) StatusLine() string {
	if !r.GateReady() {
		return StatusLineGateTimedOut
	}

	return StatusLineComplete
}

// reportBuilder accumulates phase results. Only the run controller goroutine writes to it.
type reportBuilder struct {
	report Report
}

func newReportBuilder(runID string, dryRun bool, startedAt time.Time) *reportBuilder {
	return &reportBuilder{
		report: Report{
			RunID:     runID,
			DryRun:    dryRun,
			StartedAt: startedAt,
		},
	}
}

func (b *reportBuilder) addPhase(phase PhaseReport) {
	phase.Results = slices.Clone(phase.Results)
	b.report.Phases = append(b.report.Phases, phase)
}

func (b *reportBuilder) setGate(gate GateResult) {
	b.report.Gate = gate
}

func (b *reportBuilder) build(finishedAt time.Time) *Report {
	out := b.report
	out.FinishedAt = finishedAt
	out.Phases = slices.Clone(b.report.Phases)

	return &out
}
