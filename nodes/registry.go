// SPDX-License-Identifier: MIT

package nodes

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps external ids to SUIDs and stores migration links.
type Registry struct {
	mu         sync.RWMutex
	byExternal map[uint32]SUID
	nodes      []Node            // index = SUID-1
	links      map[SUID][]SUID   // source → destinations, sorted, unique
	linked     map[SUID]struct{} // sources whose links were recorded
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byExternal: make(map[uint32]SUID),
		links:      make(map[SUID][]SUID),
		linked:     make(map[SUID]struct{}),
	}
}

// Add registers externalID and returns its new SUID.
// Returns ErrZeroExternalID or ErrDuplicateNode.
func (r *Registry) Add(externalID uint32) (SUID, error) {
	if externalID == 0 {
		return NilSUID, ErrZeroExternalID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byExternal[externalID]; ok {
		return NilSUID, fmt.Errorf("nodes: Add %d: %w", externalID, ErrDuplicateNode)
	}
	id := SUID(len(r.nodes) + 1)
	r.nodes = append(r.nodes, Node{ExternalID: externalID, SUID: id})
	r.byExternal[externalID] = id

	return id, nil
}

// AddRange registers externalIDs first..last (inclusive) in order.
func (r *Registry) AddRange(first, last uint32) error {
	for id := first; id <= last; id++ {
		if _, err := r.Add(id); err != nil {
			return err
		}
		if id == ^uint32(0) {
			break
		}
	}
	return nil
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// SUIDOf resolves an external id. Unknown ids yield (NilSUID, false).
// The signature matches the resolver migration files expect.
func (r *Registry) SUIDOf(externalID uint32) (SUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byExternal[externalID]
	return id, ok
}

// ExternalOf resolves a SUID back to its external id.
func (r *Registry) ExternalOf(id SUID) (uint32, error) {
	n, err := r.Node(id)
	if err != nil {
		return 0, err
	}
	return n.ExternalID, nil
}

// Node returns the node registered under id.
func (r *Registry) Node(id SUID) (Node, error) {
	if id == NilSUID {
		return Node{}, ErrNilSUID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) > len(r.nodes) {
		return Node{}, fmt.Errorf("nodes: suid %d: %w", id, ErrNodeNotFound)
	}
	return r.nodes[id-1], nil
}

// Nodes returns a copy of all nodes in registration (SUID) order.
func (r *Registry) Nodes() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.nodes)
}

// SetLinks replaces the destinations of from. NilSUID and self links are
// ignored and duplicates collapse. Unknown ids yield ErrNodeNotFound.
func (r *Registry) SetLinks(from SUID, to []SUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if from == NilSUID || int(from) > len(r.nodes) {
		return fmt.Errorf("nodes: SetLinks from %s: %w", from, ErrNodeNotFound)
	}
	dst := make([]SUID, 0, len(to))
	for _, t := range to {
		if t == NilSUID || t == from {
			continue
		}
		if int(t) > len(r.nodes) {
			return fmt.Errorf("nodes: SetLinks %s→%d: %w", from, t, ErrNodeNotFound)
		}
		dst = append(dst, t)
	}
	slices.Sort(dst)
	r.links[from] = slices.Compact(dst)
	r.linked[from] = struct{}{}

	return nil
}

// Links returns a copy of from's destinations in ascending SUID order.
func (r *Registry) Links(from SUID) []SUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.links[from])
}

// Fortresses lists nodes whose links were recorded and turned out empty,
// in SUID order. Nodes never passed to SetLinks are not reported.
func (r *Registry) Fortresses() []SUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []SUID
	for _, n := range r.nodes {
		if _, ok := r.linked[n.SUID]; ok && len(r.links[n.SUID]) == 0 {
			out = append(out, n.SUID)
		}
	}
	return out
}
