package app

import (
	"context"

	"github.com/skillcoder/platform-restarter/internal/infra/pinger"
	"github.com/skillcoder/platform-restarter/internal/infra/shutdown"
	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

// appstater defines the interface for application state management
type appstater interface {
	restarter.Progress
	RegisterPinger(pinger pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner) error
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type signalHandler interface {
	HandleSignals(ctx context.Context, cancel func())
}

type pingerService interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}

type appServer interface {
	pinger.Pinger
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}

type restarterService interface {
	Run(ctx context.Context) (*restarter.Report, error)
	StartSchedule(ctx context.Context, scheduler restarter.Scheduler, spec, tz string) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}
