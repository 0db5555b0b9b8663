package declare

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/armon/go-radix"

	"github.com/cspforge/xcells/xcells/varrays"
)

// RegistryStats tracks usage metrics for the array registry
type RegistryStats struct {
	Registrations int64
	Lookups       int64
	PrefixLookups int64
	VarLookups    int64
	mu            sync.RWMutex
}

// Registry indexes resolved variable arrays by id using a compressed trie
// (patricia tree), giving O(k) lookups where k is the length of the id, plus
// prefix queries for diagnostics and grouped reporting.
type Registry struct {
	tree   *radix.Tree                        // Core patricia tree for id storage
	mu     sync.RWMutex                       // Read-write mutex for concurrent access
	stats  *RegistryStats                     // Usage tracking
	stores map[string]*varrays.FlatArrayStore // Direct id -> store mapping for verification
}

// NewRegistry creates a new patricia tree-based array registry
func NewRegistry() *Registry {
	return &Registry{
		tree:   radix.New(),
		stats:  &RegistryStats{},
		stores: make(map[string]*varrays.FlatArrayStore),
	}
}

// Register adds a fully resolved store under its array id. Ids are unique per
// instance file; a second registration under the same id is rejected.
func (r *Registry) Register(store *varrays.FlatArrayStore) error {
	if store == nil {
		return fmt.Errorf("cannot register nil store")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stores[store.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, store.ID())
	}
	r.tree.Insert(store.ID(), store)
	r.stores[store.ID()] = store

	r.stats.mu.Lock()
	r.stats.Registrations++
	r.stats.mu.Unlock()

	slog.Debug("Registered array", "array", store.ID(), "cells", store.Len())
	return nil
}

// Lookup returns the store registered under the exact id.
func (r *Registry) Lookup(id string) (*varrays.FlatArrayStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.stats.mu.Lock()
	r.stats.Lookups++
	r.stats.mu.Unlock()

	v, ok := r.tree.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*varrays.FlatArrayStore), true
}

// LookupPrefix returns every store whose id starts with the given prefix.
func (r *Registry) LookupPrefix(prefix string) []*varrays.FlatArrayStore {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.stats.mu.Lock()
	r.stats.PrefixLookups++
	r.stats.mu.Unlock()

	var out []*varrays.FlatArrayStore
	r.tree.WalkPrefix(prefix, func(_ string, v interface{}) bool {
		out = append(out, v.(*varrays.FlatArrayStore))
		return false
	})
	return out
}

// VarByName resolves a fully qualified scalar name such as "x[1][2]" to its
// entry. Every bracket group must be a single index; ranges address more than
// one cell and are rejected here.
func (r *Registry) VarByName(name string) (*varrays.ScalarEntry, error) {
	r.stats.mu.Lock()
	r.stats.VarLookups++
	r.stats.mu.Unlock()

	id, _, _ := strings.Cut(name, "[")
	store, ok := r.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArray, id)
	}

	ranges, err := varrays.ParseCompactForm(name, store.ID(), store.Sizes())
	if err != nil {
		return nil, err
	}
	vec := make([]int, len(ranges))
	for d, rg := range ranges {
		if !rg.IsSingleton() {
			return nil, fmt.Errorf("%w: %q", ErrNotSingleCell, name)
		}
		vec[d] = rg.Smallest()
	}
	return store.VarAt(vec...)
}

// Walk visits every registered store in id order. Returning true from fn
// stops the walk.
func (r *Registry) Walk(fn func(store *varrays.FlatArrayStore) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.tree.Walk(func(_ string, v interface{}) bool {
		return fn(v.(*varrays.FlatArrayStore))
	})
}

// Len returns the number of registered arrays.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Len()
}

// Stats returns a snapshot of the registry's usage counters.
func (r *Registry) Stats() RegistryStats {
	r.stats.mu.RLock()
	defer r.stats.mu.RUnlock()
	return RegistryStats{
		Registrations: r.stats.Registrations,
		Lookups:       r.stats.Lookups,
		PrefixLookups: r.stats.PrefixLookups,
		VarLookups:    r.stats.VarLookups,
	}
}
