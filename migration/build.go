// SPDX-License-Identifier: MIT

package migration

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/epiroute/nodes"
	"github.com/katalvlaran/epiroute/population"
)

// BuildAll creates the Info of every registered node with up to workers
// concurrent CreateInfo calls (workers <= 0 means GOMAXPROCS), and records
// each node's destinations in reg so fortresses and reachability can be
// queried. The first error cancels the remaining work.
func BuildAll(ctx context.Context, f Factory, reg *nodes.Registry, workers int) (map[nodes.SUID]Info, error) {
	all := reg.Nodes()
	infos := make([]Info, len(all))
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info, err := f.CreateInfo(n)
			if err != nil {
				return fmt.Errorf("migration: node %d: %w", n.ExternalID, err)
			}
			infos[i] = info
			return reg.SetLinks(n.SUID, destinations(info))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[nodes.SUID]Info, len(all))
	for i, n := range all {
		out[n.SUID] = infos[i]
	}
	return out, nil
}

// destinations is the union of both genders' reachable nodes.
func destinations(info Info) []nodes.SUID {
	return slices.Concat(info.ReachableNodes(population.Male), info.ReachableNodes(population.Female))
}
