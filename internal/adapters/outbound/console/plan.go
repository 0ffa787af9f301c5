package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

// Plan renders what a run would do with the given topology, without touching the cluster.
func (p *Printer) Plan(topo *topology.Topology, order restarter.Order, upcoming []time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	table := tablewriter.NewWriter(p.out)
	table.Header("Tier", "Resource", "Restore Replicas", "Reset Claims")

	for _, tier := range topo.Tiers() {
		for _, res := range tier.Resources {
			err := table.Append(
				tier.Name,
				res.Ref.String(),
				fmt.Sprint(res.Replicas),
				strings.Join(res.ResetClaims, ","),
			)
			if err != nil {
				return fmt.Errorf("append plan row: %w", err)
			}
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render plan: %w", err)
	}

	restore := topo.Tiers()
	if order == restarter.OrderReversed {
		restore = topo.ReversedTiers()
	}

	gate := topo.Gate()

	fmt.Fprintf(p.out, "scale-down order: %s\n", tierNames(topo.Tiers()))
	fmt.Fprintf(p.out, "scale-up order: %s\n", tierNames(restore))
	fmt.Fprintf(p.out, "critical resource: %s (timeout %s, poll every %s)\n",
		gate.Ref, gate.Timeout, gate.PollInterval)

	for _, at := range upcoming {
		fmt.Fprintf(p.out, "next run: %s\n", at.Format(time.RFC3339))
	}

	return nil
}

func tierNames(tiers []topology.Tier) string {
	names := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		names = append(names, tier.Name)
	}

	return strings.Join(names, " -> ")
}
