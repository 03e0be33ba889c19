// Package strategy holds the per-page content strategy catalog.
package strategy

import (
	"fmt"
	"maps"
	"slices"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

// Registry resolves page names to strategies. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	strategies  map[string]domain.ContentStrategy
	defaultName string
}

// NewRegistry validates strategies and builds a registry. A later strategy
// with the same page name replaces an earlier one.
func NewRegistry(defaultName string, strategies ...domain.ContentStrategy) (*Registry, error) {
	r := &Registry{
		strategies:  make(map[string]domain.ContentStrategy, len(strategies)),
		defaultName: defaultName,
	}

	for _, s := range strategies {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		r.strategies[s.PageName] = clone(s)
	}

	if _, ok := r.strategies[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default strategy %q is not registered", domain.ErrInvalidStrategy, defaultName)
	}

	return r, nil
}

// Default returns a registry of the built-in catalog. It panics if the
// catalog is malformed.
func Default() *Registry {
	r, err := NewRegistry(DefaultPage, Builtin()...)
	if err != nil {
		panic(fmt.Sprintf("strategy: built-in catalog: %v", err))
	}
	return r
}

// Merge returns a new registry holding r's strategies overlaid with extra.
func (r *Registry) Merge(extra ...domain.ContentStrategy) (*Registry, error) {
	all := make([]domain.ContentStrategy, 0, len(r.strategies)+len(extra))
	for _, name := range r.Names() {
		all = append(all, r.strategies[name])
	}
	all = append(all, extra...)
	return NewRegistry(r.defaultName, all...)
}

// Get returns the strategy for name, or the default strategy when name is
// empty or unknown.
func (r *Registry) Get(name string) domain.ContentStrategy {
	if s, ok := r.Lookup(name); ok {
		return s
	}
	return clone(r.strategies[r.defaultName])
}

// Lookup returns the strategy for name without falling back.
func (r *Registry) Lookup(name string) (domain.ContentStrategy, bool) {
	s, ok := r.strategies[name]
	if !ok {
		return domain.ContentStrategy{}, false
	}
	return clone(s), true
}

// DefaultName returns the fallback page name.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names returns registered page names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.strategies))
}

// clone copies the reference fields so callers cannot mutate registry state.
func clone(s domain.ContentStrategy) domain.ContentStrategy {
	s.PostingSchedule = slices.Clone(s.PostingSchedule)
	s.ContentMix = slices.Clone(s.ContentMix)
	s.EngagementGoals = maps.Clone(s.EngagementGoals)
	s.ComplianceRules = maps.Clone(s.ComplianceRules)
	return s
}
