// SPDX-License-Identifier: MIT

package nodes

import (
	"context"
	"fmt"
)

// WalkResult is the outcome of a breadth-first walk over migration links.
type WalkResult struct {
	// Order lists reached nodes in visit order; the start node is first.
	Order []SUID

	// Depth maps each reached node to its hop count from the start.
	Depth map[SUID]int

	// Parent maps each reached node (except the start) to its predecessor.
	Parent map[SUID]SUID
}

// Reachable reports whether id was reached.
func (w *WalkResult) Reachable(id SUID) bool {
	_, ok := w.Depth[id]
	return ok
}

// WalkOptions configure Walk.
type WalkOptions struct {
	ctx      context.Context
	maxDepth int
	onVisit  func(id SUID, depth int) error
}

// WalkOption customizes a Walk.
type WalkOption func(*WalkOptions)

// WithContext makes the walk stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) WalkOption {
	if ctx == nil {
		panic("nodes: WithContext(nil)")
	}
	return func(o *WalkOptions) { o.ctx = ctx }
}

// WithMaxDepth limits the walk to d hops; d == 0 means no limit.
func WithMaxDepth(d int) WalkOption {
	if d < 0 {
		panic("nodes: WithMaxDepth: depth must be >= 0")
	}
	return func(o *WalkOptions) { o.maxDepth = d }
}

// WithOnVisit installs a hook called for each node as it is visited.
// A non-nil error aborts the walk.
func WithOnVisit(fn func(id SUID, depth int) error) WalkOption {
	if fn == nil {
		panic("nodes: WithOnVisit(nil)")
	}
	return func(o *WalkOptions) { o.onVisit = fn }
}

type queueItem struct {
	id    SUID
	depth int
}

type walker struct {
	links func(SUID) []SUID
	opts  WalkOptions
	queue []queueItem
	res   *WalkResult
}

// Walk runs a breadth-first search over the migration links from start.
// Neighbors are expanded in ascending SUID order, so the visit order is
// deterministic. Returns ErrNilSUID, ErrNodeNotFound, ctx.Err(), or a hook
// error.
func (r *Registry) Walk(start SUID, opts ...WalkOption) (*WalkResult, error) {
	o := WalkOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if _, err := r.Node(start); err != nil {
		return nil, err
	}

	n := r.Len()
	w := &walker{
		links: r.Links,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &WalkResult{
			Order:  make([]SUID, 0, n),
			Depth:  make(map[SUID]int, n),
			Parent: make(map[SUID]SUID, n),
		},
	}
	w.enqueue(start, 0, NilSUID)

	return w.res, w.loop()
}

func (w *walker) enqueue(id SUID, d int, parent SUID) {
	w.res.Depth[id] = d
	if parent != NilSUID {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.ctx.Done():
			return w.opts.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if w.opts.onVisit != nil {
			if err := w.opts.onVisit(item.id, item.depth); err != nil {
				return fmt.Errorf("nodes: OnVisit error at %s: %w", item.id, err)
			}
		}

		next := item.depth + 1
		if w.opts.maxDepth > 0 && next > w.opts.maxDepth {
			continue
		}
		for _, nbr := range w.links(item.id) {
			if _, seen := w.res.Depth[nbr]; !seen {
				w.enqueue(nbr, next, item.id)
			}
		}
	}
	return nil
}
