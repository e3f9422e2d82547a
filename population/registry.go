package population

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps property names to their ordered legal value sets.
//
// It is built once during setup and read by configuration validation, so
// reads and writes are guarded by a sync.RWMutex like the rest of the
// setup-time registries.
type Registry struct {
	mu     sync.RWMutex
	values map[string][]string
}

// NewRegistry returns an empty property registry.
func NewRegistry() *Registry {
	return &Registry{values: make(map[string][]string)}
}

// Define registers (or replaces) a property and its legal values.
// Returns ErrEmptyPropertyKey, ErrNoPropertyValues or
// ErrDuplicatePropertyValue on invalid input; nothing is stored on error.
// Complexity: O(v).
func (r *Registry) Define(key string, values ...string) error {
	if key == "" {
		return ErrEmptyPropertyKey
	}
	if len(values) == 0 {
		return fmt.Errorf("%s: %w", key, ErrNoPropertyValues)
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%s=%q: %w", key, v, ErrDuplicatePropertyValue)
		}
		seen[v] = struct{}{}
	}
	cp := make([]string, len(values))
	copy(cp, values)

	r.mu.Lock()
	r.values[key] = cp
	r.mu.Unlock()

	return nil
}

// Values returns a copy of the legal values of key, in definition order.
// Returns ErrUnknownProperty when key is not defined.
func (r *Registry) Values(key string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vals, ok := r.values[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrUnknownProperty)
	}
	out := make([]string, len(vals))
	copy(out, vals)

	return out, nil
}

// Keys returns the defined property names in ascending order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
