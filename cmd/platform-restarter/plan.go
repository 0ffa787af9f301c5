package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillcoder/platform-restarter/internal/adapters/outbound/console"
	"github.com/skillcoder/platform-restarter/internal/app"
	"github.com/skillcoder/platform-restarter/internal/infra/cronparser"
)

const upcomingRuns = 3

func newPlanCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the tiers, restore order and next scheduled runs without touching the cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printPlan(cmd, *f)
		},
	}
}

func printPlan(cmd *cobra.Command, f flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	topo, err := app.LoadTopology(cfg)
	if err != nil {
		return err
	}

	var upcoming []time.Time

	if cfg.Scheduled() {
		upcoming, err = cronparser.New().Upcoming(cfg.Schedule, cfg.ScheduleTZ, time.Now(), upcomingRuns)
		if err != nil {
			return fmt.Errorf("plan schedule: %w", err)
		}
	}

	return console.New(cmd.OutOrStdout()).Plan(topo, cfg.RestoreOrder, upcoming)
}
