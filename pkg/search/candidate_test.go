package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func libCandidate(score float64, name string, installed, hidden bool, activity time.Time, ordinal int) *Candidate {
	return &Candidate{
		Item: &Item{
			Kind:    KindLibraryEntry,
			Primary: name,
			Library: &LibraryFacet{Name: name, Installed: installed, Hidden: hidden, LastActivity: activity},
		},
		Score:   score,
		ordinal: ordinal,
	}
}

func plainCandidate(score float64, primary, secondary string, ordinal int) *Candidate {
	return &Candidate{
		Item:    &Item{Kind: KindOther, Primary: primary, Secondary: secondary},
		Score:   score,
		ordinal: ordinal,
	}
}

func TestComparatorScoreWins(t *testing.T) {
	cmp := Comparator{}
	a := plainCandidate(0.9, "zzz", "", 0)
	b := plainCandidate(0.5, "aaa", "", 1)
	assert.True(t, cmp.Less(a, b))
	assert.False(t, cmp.Less(b, a))
}

func TestComparatorLibraryBeforeOther(t *testing.T) {
	cmp := Comparator{}
	lib := libCandidate(0.5, "zelda", false, false, time.Time{}, 0)
	other := plainCandidate(0.5, "aaa", "", 1)
	assert.True(t, cmp.Less(lib, other))
	assert.False(t, cmp.Less(other, lib))
}

func TestComparatorInstallStatusToggle(t *testing.T) {
	now := time.Now()
	installedZ := libCandidate(0.5, "zelda", true, false, now, 0)
	uninstalledA := libCandidate(0.5, "aaa", false, false, now, 1)

	first := Comparator{InstallStatusFirst: true}
	assert.True(t, first.Less(installedZ, uninstalledA), "installed wins when status sorts before name")

	byName := Comparator{InstallStatusFirst: false}
	assert.True(t, byName.Less(uninstalledA, installedZ), "name wins when status sorts after name")
}

func TestComparatorLibraryTieChain(t *testing.T) {
	cmp := Comparator{InstallStatusFirst: true}
	now := time.Now()

	visible := libCandidate(0.5, "zelda", true, false, now, 0)
	hidden := libCandidate(0.5, "zelda", true, true, now, 1)
	assert.True(t, cmp.Less(visible, hidden))

	recent := libCandidate(0.5, "zelda", true, false, now, 0)
	stale := libCandidate(0.5, "zelda", true, false, now.Add(-time.Hour), 1)
	assert.True(t, cmp.Less(recent, stale))
}

func TestComparatorNameNormalized(t *testing.T) {
	cmp := Comparator{}
	accented := libCandidate(0.5, "Émile", false, false, time.Time{}, 0)
	plain := libCandidate(0.5, "emu", false, false, time.Time{}, 1)
	// "emile" < "emu" after normalization, despite É sorting after "e" raw.
	assert.True(t, cmp.Less(accented, plain))
}

func TestComparatorTextFallback(t *testing.T) {
	cmp := Comparator{}
	a := plainCandidate(0.5, "same", "alpha", 0)
	b := plainCandidate(0.5, "same", "beta", 1)
	assert.True(t, cmp.Less(a, b))
}

// Distinct candidates must never compare equal, or extraction would not
// terminate deterministically.
func TestComparatorTotalOrder(t *testing.T) {
	cmp := Comparator{}
	cands := []*Candidate{
		plainCandidate(0.5, "same", "same", 0),
		plainCandidate(0.5, "same", "same", 1),
		plainCandidate(0.5, "same", "same", 2),
	}
	for i, a := range cands {
		for j, b := range cands {
			if i == j {
				continue
			}
			assert.NotEqual(t, cmp.Less(a, b), cmp.Less(b, a), "candidates %d and %d must order strictly", i, j)
		}
	}
}
