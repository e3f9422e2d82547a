// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/epiroute/assort"
	"github.com/katalvlaran/epiroute/config"
	"github.com/katalvlaran/epiroute/migration"
	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/population"
)

var errNoNodes = errors.New("epiroute: no nodes to simulate")

// app carries the persistent flags and the logger shared by subcommands.
type app struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
	runID     string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "epiroute",
		Short:        "Partner selection and migration routing for agent-based epidemic models",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := config.NewLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.runID = uuid.NewString()
			a.logger = l.With(slog.String("run_id", a.runID))
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&a.logFormat, "log-format", config.LogText, "log format: text or json")

	root.AddCommand(newValidateCmd(a), newPairCmd(a), newMigrateCmd(a), newExportTorusCmd(a))
	return root
}

// world is everything built from one configuration file.
type world struct {
	sim     *config.Simulation
	props   *population.Registry
	engines map[population.RelationshipType]*assort.Assortivity
	nodes   *nodes.Registry
	factory migration.Factory
}

// load builds the world of path. nodeCount > 0 registers nodes 1..nodeCount;
// otherwise the torus cells or the source nodes of the migration files are
// used. The caller closes w.factory.
func (a *app) load(path string, nodeCount uint32, aopts []assort.Option, mopts []migration.Option) (*world, error) {
	sim, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	w := &world{sim: sim, nodes: nodes.NewRegistry()}
	if w.props, err = sim.PropertyRegistry(); err != nil {
		return nil, err
	}
	aopts = append([]assort.Option{assort.WithLogger(a.logger)}, aopts...)
	if w.engines, err = sim.Assortivities(w.props, aopts...); err != nil {
		return nil, err
	}

	mopts = append([]migration.Option{migration.WithLogger(a.logger)}, mopts...)
	if w.factory, err = sim.MigrationFactory(w.nodes.SUIDOf, mopts...); err != nil {
		return nil, err
	}
	if err = w.factory.Initialize(sim.IDReference); err != nil {
		return nil, err
	}
	if err = w.register(nodeCount); err != nil {
		_ = w.factory.Close()
		return nil, err
	}
	a.logger.Info("configuration loaded",
		slog.String("path", path),
		slog.String("simulation_type", sim.SimulationType),
		slog.Int("nodes", w.nodes.Len()))
	return w, nil
}

func (w *world) register(nodeCount uint32) error {
	if nodeCount > 0 {
		return w.nodes.AddRange(1, nodeCount)
	}
	var ids []uint32
	switch f := w.factory.(type) {
	case *migration.DefaultFactory:
		return w.nodes.AddRange(1, uint32(f.Torus().Len()))
	case *migration.FileFactory:
		for _, file := range f.Files() {
			ids = append(ids, file.NodeIDs()...)
		}
	}
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		if _, err := w.nodes.Add(id); err != nil {
			return err
		}
	}
	return nil
}

// writeMetrics prints every family of g in the text exposition format.
func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("epiroute: metrics: %w", err)
		}
	}
	return nil
}
