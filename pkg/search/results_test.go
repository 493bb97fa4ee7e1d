package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSetGrowsAndReplaces(t *testing.T) {
	var patches []Patch
	l := NewList(func(p Patch) { patches = append(patches, p) })

	a := Result{Item: &Item{Primary: "a"}}
	b := Result{Item: &Item{Primary: "b"}}
	l.Set(0, a)
	l.Set(1, b)
	l.Set(0, b)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "b", l.Results()[0].Item.Primary)
	require.Len(t, patches, 3)
	assert.Equal(t, OpSet, patches[0].Op)
	assert.Equal(t, 1, patches[1].Index)
}

func TestListInsertShiftsSelection(t *testing.T) {
	l := NewList(nil)
	l.Set(0, Result{Item: &Item{Primary: "a"}})
	l.Set(1, Result{Item: &Item{Primary: "c"}})
	l.Select(1)

	l.InsertAt(1, Result{Item: &Item{Primary: "b"}})

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "b", l.Results()[1].Item.Primary)
	assert.Equal(t, 2, l.Selected(), "selection follows the shifted entry")
}

func TestListTruncateClampsSelection(t *testing.T) {
	var patches []Patch
	l := NewList(func(p Patch) { patches = append(patches, p) })
	l.Set(0, Result{Item: &Item{Primary: "a"}})
	l.Set(1, Result{Item: &Item{Primary: "b"}})
	l.Select(1)

	l.Truncate(1)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.Selected())

	// Truncating to the current length emits nothing.
	n := len(patches)
	l.Truncate(5)
	assert.Len(t, patches, n)
}

func TestListSelectBounds(t *testing.T) {
	l := NewList(nil)
	l.Set(0, Result{Item: &Item{Primary: "a"}})

	l.Select(3)
	assert.Equal(t, -1, l.Selected(), "out-of-range selection is ignored")

	l.Select(0)
	assert.Equal(t, 0, l.Selected())
	l.Select(-1)
	assert.Equal(t, -1, l.Selected())
}

func TestListResultsIsSnapshot(t *testing.T) {
	l := NewList(nil)
	l.Set(0, Result{Item: &Item{Primary: "a"}})

	snap := l.Results()
	l.Set(0, Result{Item: &Item{Primary: "b"}})
	assert.Equal(t, "a", snap[0].Item.Primary)
}
