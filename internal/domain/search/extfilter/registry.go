package extfilter

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kailas-cloud/solrgeo/internal/domain/solr/params"
)

// ErrorHandler decides what happens after a filter fails.
// Returning nil continues with the next filter; returning an error aborts ApplyAll.
type ErrorHandler func(spec Spec, err error) error

// Registry maps filter ids to implementations.
type Registry struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

// NewRegistry creates a registry holding the given filters.
func NewRegistry(filters ...Filter) (*Registry, error) {
	r := &Registry{filters: make(map[string]Filter, len(filters))}
	for _, f := range filters {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a filter under its id.
func (r *Registry) Register(f Filter) error {
	if f == nil || f.ID() == "" {
		return fmt.Errorf("filter id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.filters[f.ID()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateFilter, f.ID())
	}
	r.filters[f.ID()] = f
	return nil
}

// Lookup returns the filter registered under id.
func (r *Registry) Lookup(id string) (Filter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.filters[id]
	return f, ok
}

// IDs returns registered filter ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.filters))
	for id := range r.filters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyAll runs each spec's filter in declaration order.
// A nil onError aborts on the first failure.
func (r *Registry) ApplyAll(
	ctx context.Context, qp *params.Params, specs []Spec, onError ErrorHandler,
) (*params.Params, error) {
	for _, spec := range specs {
		err := r.apply(ctx, qp, spec)
		if err == nil {
			continue
		}
		if onError == nil {
			return qp, err
		}
		if herr := onError(spec, err); herr != nil {
			return qp, herr
		}
	}
	return qp, nil
}

func (r *Registry) apply(ctx context.Context, qp *params.Params, spec Spec) error {
	f, ok := r.Lookup(spec.ID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, spec.ID)
	}
	if _, err := f.Apply(ctx, qp, spec.Params); err != nil {
		return fmt.Errorf("filter %s: %w", spec.ID, err)
	}
	return nil
}
