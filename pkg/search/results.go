package search

import (
	"sync"

	"launchsift/pkg/textmatch"
)

// PatchOp identifies one minimal mutation of the observed result sequence.
type PatchOp int

const (
	// OpSet replaces the entry at Index, growing the sequence by one when
	// Index equals the current length. Slots are reused in place so an
	// observing view can update without flicker.
	OpSet PatchOp = iota
	// OpInsert inserts the entry before Index.
	OpInsert
	// OpTruncate drops every entry at Index and beyond.
	OpTruncate
	// OpSelect moves the selection to Index.
	OpSelect
)

// Patch is one mutation applied to the result list.
type Patch struct {
	Op     PatchOp
	Index  int
	Result Result
}

// Result is one ranked entry. Match carries the matched substring spans of
// the winning key for highlighting; it is zero for unscored (show-all)
// entries.
type Result struct {
	Item  *Item
	Score float64
	Match textmatch.SubstringMatch
}

// List is the ordered result sequence owned by one session. All mutations
// come from the session worker; reads may come from any goroutine. The patch
// callback runs with the list lock held and must not call back into the list.
type List struct {
	mu       sync.Mutex
	entries  []Result
	selected int
	onPatch  func(Patch)
}

// NewList returns an empty list. onPatch may be nil.
func NewList(onPatch func(Patch)) *List {
	return &List{selected: -1, onPatch: onPatch}
}

func (l *List) emit(p Patch) {
	if l.onPatch != nil {
		l.onPatch(p)
	}
}

// Set replaces the entry at i, appending when i == Len().
func (l *List) Set(i int, r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i == len(l.entries) {
		l.entries = append(l.entries, r)
	} else {
		l.entries[i] = r
	}
	l.emit(Patch{Op: OpSet, Index: i, Result: r})
}

// InsertAt inserts r before index i.
func (l *List) InsertAt(i int, r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Result{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = r
	if l.selected >= i {
		l.selected++
	}
	l.emit(Patch{Op: OpInsert, Index: i, Result: r})
}

// Truncate drops entries at index n and beyond. No-op when already shorter.
func (l *List) Truncate(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n >= len(l.entries) {
		return
	}
	l.entries = l.entries[:n]
	if l.selected >= n {
		l.selected = n - 1
	}
	l.emit(Patch{Op: OpTruncate, Index: n})
}

// Select moves the selection.
func (l *List) Select(i int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < -1 || i >= len(l.entries) {
		return
	}
	l.selected = i
	l.emit(Patch{Op: OpSelect, Index: i})
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Selected returns the selected index, -1 when nothing is selected.
func (l *List) Selected() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selected
}

// Results returns a snapshot copy of the entries.
func (l *List) Results() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Result, len(l.entries))
	copy(out, l.entries)
	return out
}
