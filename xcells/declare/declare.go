// Package declare resolves variable-array declarations: for each declaration
// it builds a fully populated FlatArrayStore by applying the declaration's
// domain specifications in order, and registers the result for lookup by
// later parsing stages.
package declare

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/sourcegraph/conc/pool"

	"github.com/cspforge/xcells/xcells/domains"
	"github.com/cspforge/xcells/xcells/varrays"
)

var (
	ErrBlankID       = errors.New("array id cannot be blank")
	ErrDuplicateID   = errors.New("array id already registered")
	ErrUnknownArray  = errors.New("no array registered under this id")
	ErrNotSingleCell = errors.New("name does not address a single cell")
)

// DomainSpec is one (specification, domain) pair of a declaration, applied in
// declaration order.
type DomainSpec struct {
	Spec   varrays.Spec
	Domain domains.Domain
}

// Declaration describes one variable array as handed over by the surrounding
// format parser: id, per-dimension sizes, variable type and the ordered
// domain specifications.
type Declaration struct {
	ID    string
	Sizes []int
	Type  varrays.TypeTag
	Specs []DomainSpec
}

// ResolveOptions configures a Resolver.
type ResolveOptions struct {
	// Workers bounds the pool used by ResolveAll. Zero means one per CPU core.
	Workers int
	// CatchAll, when non-nil, is applied as a final OTHERS pass to any
	// declaration that leaves cells unassigned after its own specs ran.
	CatchAll domains.Domain
}

// Resolver turns declarations into populated variable-array stores.
type Resolver struct {
	opts          ResolveOptions
	assertHandler *assert.AssertHandler
	resolved      atomic.Int64
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts ResolveOptions) *Resolver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Resolver{
		opts:          opts,
		assertHandler: assert.NewAssertHandler(),
	}
}

// Resolve builds the store for one declaration. Specs are applied in
// declaration order; afterwards the optional catch-all fills whatever cells
// are still empty, and a completeness check rejects declarations that left
// gaps. Any error aborts this declaration only.
func (r *Resolver) Resolve(ctx context.Context, decl Declaration) (*varrays.FlatArrayStore, error) {
	if strings.TrimSpace(decl.ID) == "" {
		return nil, ErrBlankID
	}

	store, err := varrays.NewFlatArrayStore(decl.ID, decl.Type, decl.Sizes)
	if err != nil {
		return nil, err
	}

	slog.Debug("Resolving array declaration",
		"array", decl.ID,
		"rank", store.Rank(),
		"cells", store.Len(),
		"specs", len(decl.Specs))

	for _, ds := range decl.Specs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := store.AssignDomain(ds.Spec, ds.Domain); err != nil {
			return nil, fmt.Errorf("array %q, spec %q: %w", decl.ID, ds.Spec, err)
		}
	}

	if r.opts.CatchAll != nil && !store.IsComplete() {
		if err := store.AssignDomain(varrays.Others(), r.opts.CatchAll); err != nil {
			return nil, fmt.Errorf("array %q, catch-all: %w", decl.ID, err)
		}
	}

	if err := store.CheckComplete(); err != nil {
		return nil, err
	}
	r.assertHandler.Assert(ctx, store.Population() == store.Len(),
		"resolved store must be fully populated")

	r.resolved.Add(1)
	return store, nil
}

// ResolveAll resolves independent declarations concurrently on a bounded
// worker pool and registers each result. Stores never alias across
// declarations, so no cross-array synchronization is needed; the registry
// serializes its own writes. The first failing declaration cancels the rest.
func (r *Resolver) ResolveAll(ctx context.Context, decls []Declaration) (*Registry, error) {
	registry := NewRegistry()

	p := pool.New().
		WithMaxGoroutines(r.opts.Workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, decl := range decls {
		p.Go(func(ctx context.Context) error {
			store, err := r.Resolve(ctx, decl)
			if err != nil {
				slog.Error("Array declaration failed", "array", decl.ID, "error", err)
				return err
			}
			return registry.Register(store)
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Resolved all declarations", "arrays", registry.Len())
	return registry, nil
}

// Resolved returns how many declarations this resolver completed.
func (r *Resolver) Resolved() int64 {
	return r.resolved.Load()
}
