// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/epiroute/assort"
	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rng"
	"github.com/katalvlaran/epiroute/stats"
)

// Stream ids of the synthetic workloads, distinct from relationship streams.
const (
	pairStream    = 100
	migrateStream = 200
)

func newPairCmd(a *app) *cobra.Command {
	var (
		cfgPath    string
		relName    string
		size       int
		draws      int
		prevalence float64
		metrics    bool
	)
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Draw partners from a synthetic population and tally category pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rel, err := population.ParseRelationshipType(relName)
			if err != nil {
				return err
			}
			if size < 2 || draws < 0 || prevalence < 0 || prevalence > 1 {
				return fmt.Errorf("epiroute: pair: need --population >= 2, --draws >= 0 and --prevalence in [0,1]")
			}

			preg := prometheus.NewRegistry()
			w, err := a.load(cfgPath, 1, []assort.Option{assort.WithObserver(stats.NewRecorder(preg))}, nil)
			if err != nil {
				return err
			}
			defer func() { _ = w.factory.Close() }()

			e := w.engines[rel]
			src := rng.Derive(w.sim.Seed, pairStream)
			males, females := synthesize(size, prevalence, w.props, src)
			buf := assort.NewScoreBuffer(len(females))

			counts := make(map[[2]string]int)
			unmatched := 0
			for range draws {
				anchor := males[int(src.Uniform()*float64(len(males)))]
				p, err := e.SelectPartner(anchor, females, buf)
				if err != nil {
					return err
				}
				if p == nil {
					unmatched++
					continue
				}
				counts[[2]string{category(e, anchor), category(e, p)}]++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s with %s: %d draws over %d males and %d females\n",
				rel, e.EffectiveGroup(), draws, len(males), len(females))
			keys := make([][2]string, 0, len(counts))
			for k := range counts {
				keys = append(keys, k)
			}
			slices.SortFunc(keys, func(x, y [2]string) int {
				if c := strings.Compare(x[0], y[0]); c != 0 {
					return c
				}
				return strings.Compare(x[1], y[1])
			})
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MALE\tFEMALE\tPAIRS")
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", k[0], k[1], counts[k])
			}
			if err = tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "unmatched: %d\n", unmatched)

			if metrics {
				return writeMetrics(out, preg)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "simulation configuration file (YAML)")
	f.StringVar(&relName, "rel", population.Transitory.String(), "relationship type")
	f.IntVar(&size, "population", 1000, "synthetic population size, split evenly by gender")
	f.IntVar(&draws, "draws", 1000, "number of partner selections")
	f.Float64Var(&prevalence, "prevalence", 0.2, "share of infected individuals")
	f.BoolVar(&metrics, "metrics", false, "print the collected metrics")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// synthesize builds n adults alternating male and female. Infection is
// drawn with probability prevalence, each infected individual is co-infected
// with probability 1/2, and every registered property gets a uniform value.
func synthesize(n int, prevalence float64, props *population.Registry, src rng.Source) (males, females []assort.Partner) {
	keys := props.Keys()
	for i := range n {
		g := population.Male
		if i%2 == 1 {
			g = population.Female
		}
		ind := population.NewIndividual(uint64(i+1), (15+35*src.Uniform())*population.DaysPerYear, g)
		if src.Uniform() < prevalence {
			ind.SetInfected(true)
			ind.SetCoInfected(src.Uniform() < 0.5)
		}
		for _, k := range keys {
			vals, _ := props.Values(k)
			ind.SetProperty(k, vals[int(src.Uniform()*float64(len(vals)))])
		}
		if g == population.Male {
			males = append(males, ind)
		} else {
			females = append(females, ind)
		}
	}
	return males, females
}

// category names p's matrix axis under e's group in effect.
func category(e *assort.Assortivity, p assort.Partner) string {
	switch e.EffectiveGroup() {
	case assort.STIInfectionStatus:
		return strings.ToUpper(fmt.Sprint(p.IsInfected()))
	case assort.STICoInfectionStatus:
		return strings.ToUpper(fmt.Sprint(p.HasCoInfection()))
	case assort.IndividualProperty:
		v, _ := p.PropertyValue(e.PropertyName())
		return v
	}
	return "*"
}
