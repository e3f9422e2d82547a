// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/epiroute/migration"
	"github.com/katalvlaran/epiroute/population"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		cfgPath   string
		nodeCount uint32
		workers   int
		dumpState bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a configuration and build every engine and migration strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := a.load(cfgPath, nodeCount, nil, nil)
			if err != nil {
				return err
			}
			defer func() { _ = w.factory.Close() }()

			if _, err = migration.BuildAll(cmd.Context(), w.factory, w.nodes, workers); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %s, id reference %q\n", a.runID, w.sim.SimulationType, w.sim.IDReference)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RELATIONSHIP\tGROUP\tIN EFFECT\tAXES\tSTART")
			for _, rel := range population.RelationshipTypes() {
				e := w.engines[rel]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\n", rel, e.Group(), e.EffectiveGroup(),
					strings.Join(e.Axes(), ","), e.StartYear())
			}
			if err = tw.Flush(); err != nil {
				return err
			}

			var enabled []string
			for _, t := range migration.Types() {
				if w.factory.IsEnabled(t) {
					enabled = append(enabled, t.String())
				}
			}
			fmt.Fprintf(out, "migration %s/%s: %d nodes, %d fortresses, enabled [%s]\n",
				w.sim.Migration.Model, w.sim.Migration.Source, w.nodes.Len(),
				len(w.nodes.Fortresses()), strings.Join(enabled, " "))
			if dumpState {
				for _, rel := range population.RelationshipTypes() {
					b, err := w.engines[rel].MarshalState()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "---\n%s", b)
				}
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "simulation configuration file (YAML)")
	f.Uint32Var(&nodeCount, "nodes", 0, "register nodes 1..n instead of deriving them from the migration source")
	f.IntVar(&workers, "workers", 0, "concurrent strategy builds (0: GOMAXPROCS)")
	f.BoolVar(&dumpState, "dump-state", false, "print each engine's restorable state as YAML documents")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
