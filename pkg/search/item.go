/*
Package search implements launchsift's ranking engine: a mutable pool of
searchable items is scored against a live, character-by-character query and the
best matches are emitted incrementally into an observed top-K result list.

A Session owns the moving parts: a Registry of item sources, a navigation
stack for prefix-scoped sub-searches, and the result list. Every query
generation runs on a single background worker so no two passes ever mutate
the result list concurrently; scoring within a pass is parallelized.
*/
package search

import "time"

// Key is one weighted string attached to an item, used as matching surface.
// Weight 0 removes the key from scoring entirely.
type Key struct {
	Text   string
	Weight float64
}

// ScoreMode selects how an item's per-key scores reduce to one item score.
type ScoreMode int

const (
	// WeightedAverage is sum(score*weight)/sum(weight).
	WeightedAverage ScoreMode = iota
	// WeightedMaxScore is max(score*weight).
	WeightedMaxScore
	// WeightedMinScore is min(score*weight).
	WeightedMinScore
)

// ItemKind tags the closed set of item kinds the comparator distinguishes.
type ItemKind int

const (
	// KindOther is any item without special ordering rules.
	KindOther ItemKind = iota
	// KindLibraryEntry marks items backed by a library record; they sort
	// ahead of other kinds on score ties and among themselves by the
	// library facet.
	KindLibraryEntry
)

// LibraryFacet carries the library-entry fields the tie-break comparator
// reads. Set on items of KindLibraryEntry.
type LibraryFacet struct {
	Name         string
	Installed    bool
	Hidden       bool
	LastActivity time.Time
}

// Item is one searchable value produced by a Source. Identity for result-list
// purposes is the pointer, not any key.
type Item struct {
	// Keys are the item's static search keys. If KeysFunc is set it takes
	// precedence and is re-read on every scoring pass, so keys may change
	// between passes.
	Keys     []Key
	KeysFunc func() []Key

	Actions []Action
	Mode    ScoreMode

	// Display fields, also the non-library tie-break keys.
	Primary   string
	Secondary string

	Kind    ItemKind
	Library *LibraryFacet

	// Details is an opaque payload for the presenting side.
	Details any
}

// SearchKeys returns the item's current keys, honoring lazy computation.
// Callers must not cache the result across passes.
func (it *Item) SearchKeys() []Key {
	if it.KeysFunc != nil {
		return it.KeysFunc()
	}
	return it.Keys
}

// Action is something the user can do with a matched item.
type Action interface {
	Name() string
	CanExecute(*Item) bool
	Execute(*Item)
	CloseAfterExecute() bool
}

// SimpleAction is the plain Action implementation.
type SimpleAction struct {
	Label    string
	Can      func(*Item) bool
	Run      func(*Item)
	KeepOpen bool
}

func (a *SimpleAction) Name() string { return a.Label }

func (a *SimpleAction) CanExecute(it *Item) bool {
	if a.Can == nil {
		return true
	}
	return a.Can(it)
}

func (a *SimpleAction) Execute(it *Item) {
	if a.Run != nil {
		a.Run(it)
	}
}

func (a *SimpleAction) CloseAfterExecute() bool { return !a.KeepOpen }

// SubItemsAction switches the session into a narrower sub-source when
// executed. It never closes the session.
type SubItemsAction struct {
	SimpleAction
	Source *SubSource
}

func (a *SubItemsAction) CloseAfterExecute() bool { return false }
