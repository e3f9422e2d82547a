// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/epiroute/migration"
)

func newExportTorusCmd(a *app) *cobra.Command {
	var (
		size       int
		out        string
		idRef      string
		multiplier float64
	)
	cmd := &cobra.Command{
		Use:   "export-torus",
		Short: "Write the default torus local migration as a migration file pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			df, err := migration.NewDefaultFactory(size, migration.FileParams{Enabled: true, Multiplier: multiplier}, nil)
			if err != nil {
				return err
			}
			t := df.Torus()
			rate := df.BaseRate()

			rows := make([]migration.NodeRates, 0, t.Len())
			for id := uint32(1); id <= uint32(t.Len()); id++ {
				nb, err := t.Neighbors(id)
				if err != nil {
					return err
				}
				dests := make([]migration.Destination, len(nb))
				for i, to := range nb {
					dests[i] = migration.Destination{To: to, Rate: rate}
				}
				rows = append(rows, migration.FixedNodeRates(id, dests...))
			}
			if err = migration.WriteFile(out, migration.Layout{IDReference: idRef, Type: migration.Local}, rows); err != nil {
				return err
			}
			a.logger.Info("torus exported", slog.String("path", out), slog.Int("size", size), slog.Float64("rate", rate))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s.json: %d nodes\n", out, out, len(rows))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&size, "size", 10, "torus side length")
	f.StringVarP(&out, "out", "o", "local_migration.bin", "binary output path; metadata goes to <out>.json")
	f.StringVar(&idRef, "id-reference", "Gridded world", "IdReference written to the metadata")
	f.Float64Var(&multiplier, "multiplier", 1, "local migration rate multiplier")
	return cmd
}
