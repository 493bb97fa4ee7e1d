// Package filter provides a composable boolean predicate over arbitrary item
// types. A Multi filter holds an OR-group and an AND-group of predicates and
// is extended by copying, so a published filter is never mutated by further
// drill-down.
package filter

// Predicate reports whether a value passes one criterion.
type Predicate[T any] func(T) bool

// Multi evaluates as: empty OR (any of the any-group AND all of the all-group).
// The zero value is the empty filter and matches everything.
type Multi[T any] struct {
	anyOf []Predicate[T]
	allOf []Predicate[T]
}

// New returns an empty filter.
func New[T any]() Multi[T] {
	return Multi[T]{}
}

// Empty reports whether the filter has no predicates.
func (m Multi[T]) Empty() bool {
	return len(m.anyOf) == 0 && len(m.allOf) == 0
}

// Eval applies the filter to v.
func (m Multi[T]) Eval(v T) bool {
	if m.Empty() {
		return true
	}
	anyOK := len(m.anyOf) == 0
	for _, p := range m.anyOf {
		if p(v) {
			anyOK = true
			break
		}
	}
	if !anyOK {
		return false
	}
	for _, p := range m.allOf {
		if !p(v) {
			return false
		}
	}
	return true
}

// CopyAndAddAny returns a new filter with p appended to the OR-group. The
// receiver is left untouched.
func (m Multi[T]) CopyAndAddAny(p Predicate[T]) Multi[T] {
	c := m.clone()
	c.anyOf = append(c.anyOf, p)
	return c
}

// CopyAndAddAll returns a new filter with p appended to the AND-group. The
// receiver is left untouched.
func (m Multi[T]) CopyAndAddAll(p Predicate[T]) Multi[T] {
	c := m.clone()
	c.allOf = append(c.allOf, p)
	return c
}

// clone copies both groups into fresh backing arrays so appends on the copy
// can never alias the original.
func (m Multi[T]) clone() Multi[T] {
	c := Multi[T]{
		anyOf: make([]Predicate[T], len(m.anyOf), len(m.anyOf)+1),
		allOf: make([]Predicate[T], len(m.allOf), len(m.allOf)+1),
	}
	copy(c.anyOf, m.anyOf)
	copy(c.allOf, m.allOf)
	return c
}
