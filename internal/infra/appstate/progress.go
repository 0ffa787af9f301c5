package appstate

import (
	"context"
	"time"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

// RunStatus is the progress of the current run and the summary of the last finished one.
type RunStatus struct {
	Active    bool        `json:"active"`
	RunID     string      `json:"runId,omitempty"`
	Stage     string      `json:"stage,omitempty"`
	StartedAt *time.Time  `json:"startedAt,omitempty"`
	Succeeded int         `json:"succeeded"`
	Skipped   int         `json:"skipped"`
	Failed    int         `json:"failed"`
	Gate      string      `json:"gate,omitempty"`
	Runs      int         `json:"runs"`
	LastRun   *RunSummary `json:"lastRun,omitempty"`
}

// RunSummary describes a finished or aborted run.
type RunSummary struct {
	RunID           string    `json:"runId"`
	FinishedAt      time.Time `json:"finishedAt"`
	Duration        string    `json:"duration"`
	Result          string    `json:"result"`
	FailedResources []string  `json:"failedResources,omitempty"`
	Gate            string    `json:"gate,omitempty"`
	DryRun          bool      `json:"dryRun,omitempty"`
}

var _ restarter.Progress = (*AppState)(nil)

func (s *AppState) StateChanged(_ context.Context, runID string, state restarter.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state.Stage == restarter.StageInit {
		now := time.Now()
		s.run = RunStatus{
			Active:    true,
			RunID:     runID,
			StartedAt: &now,
			Runs:      s.run.Runs,
			LastRun:   s.run.LastRun,
		}
	}

	s.run.Stage = state.String()
}

func (s *AppState) PhaseCompleted(_ context.Context, _ string, phase restarter.PhaseReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, res := range phase.Results {
		switch res.Outcome.Status {
		case restarter.OutcomeSuccess:
			s.run.Succeeded++
		case restarter.OutcomeSkipped:
			s.run.Skipped++
		case restarter.OutcomeFailed:
			s.run.Failed++
		}
	}
}

func (s *AppState) GateResolved(_ context.Context, _ string, gate restarter.GateResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.run.Gate = string(gate.Verdict)
}

func (s *AppState) RunCompleted(_ context.Context, report *restarter.Report) {
	s.finishRun(report, report.StatusLine())
}

func (s *AppState) RunAborted(_ context.Context, report *restarter.Report, cause error) {
	if report == nil {
		s.mu.RLock()
		runID := s.run.RunID
		s.mu.RUnlock()

		now := time.Now()
		report = &restarter.Report{RunID: runID, StartedAt: now, FinishedAt: now}
	}

	s.finishRun(report, "aborted: "+cause.Error())
}

// GetRunStatus returns a copy of the run progress.
func (s *AppState) GetRunStatus() RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.run
	if out.LastRun != nil {
		last := *out.LastRun
		out.LastRun = &last
	}

	return out
}

func (s *AppState) finishRun(report *restarter.Report, result string) {
	summary := &RunSummary{
		RunID:      report.RunID,
		FinishedAt: report.FinishedAt,
		Duration:   report.Duration().String(),
		Result:     result,
		Gate:       string(report.Gate.Verdict),
		DryRun:     report.DryRun,
	}

	for _, res := range report.Failed() {
		summary.FailedResources = append(summary.FailedResources, res.Ref.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.run.Active = false
	s.run.Runs++
	s.run.LastRun = summary
}
