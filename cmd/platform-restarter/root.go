package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"github.com/skillcoder/platform-restarter/internal/app"
	"github.com/skillcoder/platform-restarter/internal/config"
	"github.com/skillcoder/platform-restarter/internal/infra/appstate"
	"github.com/skillcoder/platform-restarter/internal/infra/logging"
	"github.com/skillcoder/platform-restarter/internal/infra/pinger"
)

const pingerInterval = 30 * time.Second

type flags struct {
	topology string
	dryRun   bool
	schedule string
}

func newRootCommand(signals <-chan os.Signal, appStart time.Time) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "platform-restarter",
		Short: "Restart the RIC platform tier by tier",
		Long: `Scales every tier of the platform down to zero, waits for it to settle, restores
each workload to its configured replica count tier by tier and verifies that the
critical resource becomes available again.

Without --schedule it runs once and exits. Configuration is read from RESTARTER_*
environment variables; flags override them.`,
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			// stdout carries the run progress
			logger := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)

			err = run(cmd, logger, cfg, signals, appStart)
			if err != nil {
				logger.ErrorContext(cmd.Context(), "failed to run", "reason", err)
				// reported through the configured logger
				cmd.SilenceErrors = true
			}

			return err
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf(
		"platform-restarter version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	cmd.PersistentFlags().StringVar(&f.topology, "topology", "",
		"topology file (default: embedded platform topology)")
	cmd.PersistentFlags().BoolVar(&f.dryRun, "dry-run", false,
		"log every step without scaling or deleting anything")
	cmd.PersistentFlags().StringVar(&f.schedule, "schedule", "",
		"cron spec; keep running and restart at every occurrence")

	cmd.AddCommand(newPlanCommand(&f))

	return cmd
}

func run(
	cmd *cobra.Command,
	logger *slog.Logger,
	cfg *config.Config,
	signals <-chan os.Signal,
	appStart time.Time,
) error {
	pingers := pinger.New(logger, clock.RealClock{}, pingerInterval, 0)
	appState := appstate.New(logger, appStart, signals, pingers)

	application, err := app.New(logger, cfg, appState, pingers, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("new application: %w", err)
	}

	return application.Run(cmd.Context())
}

// loadConfig reads the environment and applies the flags that were set explicitly.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("topology") {
		cfg.TopologyFile = f.topology
	}

	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = f.dryRun
	}

	if cmd.Flags().Changed("schedule") {
		cfg.Schedule = f.schedule
		if cfg.HTTPPort == "" {
			cfg.HTTPPort = config.DefaultScheduleHTTPPort
		}
	}

	return cfg, nil
}
