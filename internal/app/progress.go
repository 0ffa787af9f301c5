package app

import (
	"context"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

// progressGroup fans run events out to every sink in order.
type progressGroup []restarter.Progress

var _ restarter.Progress = progressGroup(nil)

func (g progressGroup) StateChanged(ctx context.Context, runID string, state restarter.State) {
	for _, p := range g {
		p.StateChanged(ctx, runID, state)
	}
}

func (g progressGroup) PhaseCompleted(ctx context.Context, runID string, phase restarter.PhaseReport) {
	for _, p := range g {
		p.PhaseCompleted(ctx, runID, phase)
	}
}

func (g progressGroup) GateResolved(ctx context.Context, runID string, gate restarter.GateResult) {
	for _, p := range g {
		p.GateResolved(ctx, runID, gate)
	}
}

func (g progressGroup) RunCompleted(ctx context.Context, report *restarter.Report) {
	for _, p := range g {
		p.RunCompleted(ctx, report)
	}
}

func (g progressGroup) RunAborted(ctx context.Context, report *restarter.Report, cause error) {
	for _, p := range g {
		p.RunAborted(ctx, report, cause)
	}
}

// clusterPinger probes the Kubernetes API between scheduled runs.
type clusterPinger struct {
	cluster restarter.ClusterWorkload
}

func (p clusterPinger) Name() string {
	return "kubernetes-api"
}

func (p clusterPinger) Ping(ctx context.Context) error {
	return p.cluster.PingQuery(ctx)
}
