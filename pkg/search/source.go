package search

import (
	"context"
	"sort"
	"sync"
)

// Source is the minimal item-source capability: a stable, query-independent
// pool. Sources should cache; Items is called once per ranking pass.
type Source interface {
	Items() []*Item
}

// QuerySource is a source whose items depend on the query and are produced
// synchronously. Returning nil means "no query-dependent items this pass",
// which is distinct from an empty, successful result.
type QuerySource interface {
	Source
	QueryItems(query string) []*Item
}

// AsyncSource is a slow source consulted after the synchronous pass and the
// debounce delay. It receives the already-ranked candidates so it can
// short-circuit, e.g. skip a network call when a local match is already
// excellent. Errors are contained by the engine; the source just contributes
// nothing for the pass.
type AsyncSource interface {
	Source
	ItemsAsync(ctx context.Context, query string, ranked []Candidate) ([]*Item, error)
}

// SubSource scopes a source behind a textual query prefix. While active, the
// query must keep the prefix or the navigation stack pops back out.
type SubSource struct {
	Source
	Prefix                 string
	DisplayAllIfQueryEmpty bool
}

// unwrap returns the concrete source behind a SubSource wrapper. Capability
// assertions must run against the wrapped value: an embedded interface only
// promotes Items(), not the dynamic value's QuerySource/AsyncSource methods.
func unwrap(src Source) Source {
	if sub, ok := src.(*SubSource); ok && sub.Source != nil {
		return sub.Source
	}
	return src
}

// Registry collects the sources and actions contributed by named owners. It
// is an explicit value owned by the session root, not a package global.
// Owners can be disabled wholesale, e.g. per-plugin enablement settings.
type Registry struct {
	mu       sync.RWMutex
	sources  map[string][]Source
	actions  map[string][]Action
	disabled map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources:  make(map[string][]Source),
		actions:  make(map[string][]Action),
		disabled: make(map[string]bool),
	}
}

// AddSource registers a source under an owner name.
func (r *Registry) AddSource(owner string, s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[owner] = append(r.sources[owner], s)
}

// AddAction registers a global action under an owner name. Global actions are
// offered for every item that accepts them.
func (r *Registry) AddAction(owner string, a Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[owner] = append(r.actions[owner], a)
}

// SetEnabled toggles all contributions of one owner.
func (r *Registry) SetEnabled(owner string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[owner] = !enabled
}

// Sources returns the enabled sources in stable (owner-sorted) order.
func (r *Registry) Sources() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Source
	for _, owner := range r.sortedOwners(len(r.sources)) {
		if r.disabled[owner] {
			continue
		}
		out = append(out, r.sources[owner]...)
	}
	return out
}

// Actions returns the enabled global actions in stable order.
func (r *Registry) Actions() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var owners []string
	for owner := range r.actions {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	var out []Action
	for _, owner := range owners {
		if r.disabled[owner] {
			continue
		}
		out = append(out, r.actions[owner]...)
	}
	return out
}

func (r *Registry) sortedOwners(n int) []string {
	owners := make([]string, 0, n)
	for owner := range r.sources {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// StaticSource is a fixed item pool, mainly for composition and tests.
type StaticSource []*Item

func (s StaticSource) Items() []*Item { return s }
