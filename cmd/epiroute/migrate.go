// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/epiroute/migration"
	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rng"
	"github.com/katalvlaran/epiroute/stats"
)

func newMigrateCmd(a *app) *cobra.Command {
	var (
		cfgPath   string
		nodeCount uint32
		travelers int
		workers   int
		cdfCache  int
		metrics   bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Build every node's migration strategy and sample trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if travelers < 0 || cdfCache < 0 {
				return fmt.Errorf("epiroute: migrate: --travelers and --cdf-cache must be >= 0")
			}
			preg := prometheus.NewRegistry()
			mopts := []migration.Option{
				migration.WithObserver(stats.NewRecorder(preg)),
				migration.WithCDFCache(cdfCache),
			}
			w, err := a.load(cfgPath, nodeCount, nil, mopts)
			if err != nil {
				return err
			}
			defer func() { _ = w.factory.Close() }()

			all := w.nodes.Nodes()
			if len(all) == 0 {
				return errNoNodes
			}
			infos, err := migration.BuildAll(cmd.Context(), w.factory, w.nodes, workers)
			if err != nil {
				return err
			}

			src := rng.Derive(w.sim.Seed, migrateStream)
			counts := make(map[migration.Type]int)
			var wait float64
			for i := range travelers {
				n := all[int(src.Uniform()*float64(len(all)))]
				g := population.Male
				if src.Uniform() < 0.5 {
					g = population.Female
				}
				ind := population.NewIndividual(uint64(i+1), 80*src.Uniform()*population.DaysPerYear, g)
				step, err := infos[n.SUID].PickMigrationStep(src, ind)
				if err != nil {
					return err
				}
				counts[step.Type]++
				if step.Migrates() {
					wait += step.Time
				}
			}

			walk, err := w.nodes.Walk(all[0].SUID, nodes.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			fortresses := w.nodes.Fortresses()
			a.logger.Debug("migration sampled",
				slog.Int("travelers", travelers),
				slog.Int("fortresses", len(fortresses)),
				slog.Int("reachable", len(walk.Order)))

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tTRAVELERS")
			moved := 0
			for _, t := range append([]migration.Type{migration.NoMigration}, migration.Types()...) {
				if c := counts[t]; c > 0 {
					fmt.Fprintf(tw, "%s\t%d\n", t, c)
					if t != migration.NoMigration {
						moved += c
					}
				}
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			if moved > 0 {
				fmt.Fprintf(out, "mean wait: %.2f days\n", wait/float64(moved))
			}
			fmt.Fprintf(out, "fortresses: %d", len(fortresses))
			for _, id := range fortresses {
				ext, _ := w.nodes.ExternalOf(id)
				fmt.Fprintf(out, " %d", ext)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "reachable from node %d: %d of %d\n", all[0].ExternalID, len(walk.Order), len(all))

			if metrics {
				return writeMetrics(out, preg)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "simulation configuration file (YAML)")
	f.Uint32Var(&nodeCount, "nodes", 0, "register nodes 1..n instead of deriving them from the migration source")
	f.IntVar(&travelers, "travelers", 1000, "number of sampled travelers")
	f.IntVar(&workers, "workers", 0, "concurrent strategy builds (0: GOMAXPROCS)")
	f.IntVar(&cdfCache, "cdf-cache", 0, "per-node CDF cache entries for age-dependent rates (0: off)")
	f.BoolVar(&metrics, "metrics", false, "print the collected metrics")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
