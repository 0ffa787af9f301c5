package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/utils/clock"

	"github.com/skillcoder/platform-restarter/internal/adapters/inbound/topologyfile"
	"github.com/skillcoder/platform-restarter/internal/adapters/outbound/console"
	"github.com/skillcoder/platform-restarter/internal/adapters/outbound/k8s"
	"github.com/skillcoder/platform-restarter/internal/config"
	"github.com/skillcoder/platform-restarter/internal/httpserver"
	"github.com/skillcoder/platform-restarter/internal/infra/appstate"
	"github.com/skillcoder/platform-restarter/internal/infra/cronparser"
	"github.com/skillcoder/platform-restarter/internal/infra/shutdown"
	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

type App struct {
	logger    *slog.Logger
	cfg       *config.Config
	appState  appstater
	pingers   pingerService
	signals   signalHandler
	cluster   restarter.ClusterWorkload
	restarter restarterService
	scheduler restarter.Scheduler
	servers   []appServer
}

// New creates a new application instance with all dependencies wired.
// Run progress is printed to out.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState *appstate.AppState,
	pingers pingerService,
	out io.Writer,
) (*App, error) {
	topo, err := LoadTopology(cfg)
	if err != nil {
		return nil, err
	}

	kubeConfig, err := clientcmd.BuildConfigFromFlags(
		cfg.KubeMaster,
		cfg.KubeConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	// bounds every request, including the ones that take no context
	kubeConfig.Timeout = cfg.CommandTimeout

	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	return newApp(logger, cfg, appState, pingers, k8s.New(logger, clientset), topo, clock.RealClock{}, out), nil
}

// LoadTopology reads the configured topology file, or the embedded default, and applies
// the gate timing overrides.
func LoadTopology(cfg *config.Config) (*topology.Topology, error) {
	topo, err := topologyfile.Load(cfg.TopologyFile)
	if err != nil {
		return nil, fmt.Errorf("load topology: %w", err)
	}

	topo, err = topo.WithGateTiming(cfg.GateTimeout, cfg.GatePollInterval)
	if err != nil {
		return nil, fmt.Errorf("apply gate timing: %w", err)
	}

	return topo, nil
}

func newApp(
	logger *slog.Logger,
	cfg *config.Config,
	appState *appstate.AppState,
	pingers pingerService,
	cluster restarter.ClusterWorkload,
	topo *topology.Topology,
	clk restarter.Clock,
	out io.Writer,
) *App {
	progress := progressGroup{console.New(out), appState}

	service := restarter.New(logger, cluster, clk, progress, topo, restarter.Config{
		SettleInterval:      cfg.SettleInterval,
		FinalSettleInterval: cfg.FinalSettleInterval,
		CommandTimeout:      cfg.CommandTimeout,
		MaxParallel:         cfg.MaxParallel,
		RestoreOrder:        cfg.RestoreOrder,
		DryRun:              cfg.DryRun,
	})

	var servers []appServer

	if cfg.HTTPPort != "" {
		servers = append(servers, httpserver.New(logger, appState, cfg.HTTPPort))
	}

	if cfg.MetricsPort != "" {
		servers = append(servers, httpserver.NewMetricsServer(logger, cfg.MetricsPort))
	}

	return &App{
		logger:    logger,
		cfg:       cfg,
		appState:  appState,
		pingers:   pingers,
		signals:   shutdown.New(logger, appState),
		cluster:   cluster,
		restarter: service,
		scheduler: cronparser.New(),
		servers:   servers,
	}
}

// Run performs one restart, or keeps restarting on the configured schedule until a
// termination signal arrives.
func (a *App) Run(originCtx context.Context) error {
	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go a.signals.HandleSignals(ctx, cancel)

	err := a.appState.SetStarting(ctx)
	if err != nil {
		return fmt.Errorf("set starting application state: %w", err)
	}

	readies, err := a.startServers(ctx)
	if err != nil {
		return errors.Join(err, a.appState.Shutdown(ctx))
	}

	if a.cfg.Scheduled() {
		return a.runScheduled(ctx, readies)
	}

	return a.runOnce(ctx, readies)
}

func (a *App) startServers(ctx context.Context) ([]<-chan struct{}, error) {
	readies := make([]<-chan struct{}, 0, len(a.servers))

	for _, srv := range a.servers {
		err := a.appState.RegisterShutdowner(srv)
		if err != nil {
			return nil, fmt.Errorf("register shutdowner: %w", err)
		}

		err = srv.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("start %s: %w", srv.Name(), err)
		}

		readies = append(readies, srv.Ready())
	}

	return readies, nil
}

// runOnce maps the run outcome to the process result: a timed-out gate and per-resource
// failures are reported on the console and still count as a completed run.
func (a *App) runOnce(ctx context.Context, readies []<-chan struct{}) error {
	a.setRunningWhenReady(ctx, readies)

	report, err := a.restarter.Run(ctx)

	shutdownErr := a.appState.Shutdown(ctx)
	if shutdownErr != nil {
		a.logger.ErrorContext(ctx, "shutdown failed", "reason", shutdownErr)
	}

	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}

	if failed := report.Failed(); len(failed) > 0 {
		a.logger.WarnContext(ctx, "some resources failed to scale", "failed", len(failed))
	}

	return nil
}

func (a *App) runScheduled(ctx context.Context, readies []<-chan struct{}) error {
	logger := a.logger.With("schedule", a.cfg.Schedule, "tz", a.cfg.ScheduleTZ)

	err := a.registerScheduled()
	if err != nil {
		return errors.Join(err, a.appState.Shutdown(ctx))
	}

	err = a.pingers.Start(ctx)
	if err != nil {
		return errors.Join(fmt.Errorf("start pingers: %w", err), a.appState.Shutdown(ctx))
	}

	err = a.restarter.StartSchedule(ctx, a.scheduler, a.cfg.Schedule, a.cfg.ScheduleTZ)
	if err != nil {
		return errors.Join(fmt.Errorf("start schedule: %w", err), a.appState.Shutdown(ctx))
	}

	readies = append(readies, a.pingers.Ready(), a.restarter.Ready())
	a.setRunningWhenReady(ctx, readies)

	logger.InfoContext(ctx, "waiting for scheduled restarts")

	<-ctx.Done()

	logger.InfoContext(ctx, "shutting down")

	return a.appState.Shutdown(ctx)
}

func (a *App) registerScheduled() error {
	for _, srv := range a.servers {
		err := a.appState.RegisterPinger(srv)
		if err != nil {
			return fmt.Errorf("register pinger: %w", err)
		}
	}

	err := a.appState.RegisterPinger(clusterPinger{cluster: a.cluster})
	if err != nil {
		return fmt.Errorf("register pinger: %w", err)
	}

	err = a.appState.RegisterShutdowner(a.pingers)
	if err != nil {
		return fmt.Errorf("register shutdowner: %w", err)
	}

	err = a.appState.RegisterShutdowner(a.restarter)
	if err != nil {
		return fmt.Errorf("register shutdowner: %w", err)
	}

	return nil
}

func (a *App) setRunningWhenReady(ctx context.Context, readies []<-chan struct{}) {
	select {
	case <-allChannelsClose(ctx, a.logger, readies...):
	case <-ctx.Done():
	}

	if ctx.Err() != nil {
		return
	}

	err := a.appState.SetRunning(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "set running application state", "reason", err)
	}
}

// allChannelsClose returns a channel closed once every input channel is closed,
// or as soon as ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for i, ch := range chans {
			select {
			case <-ch:
			case <-ctx.Done():
				logger.DebugContext(ctx, "stopped waiting for components", "pending", len(chans)-i)

				return
			}
		}
	}()

	return out
}
