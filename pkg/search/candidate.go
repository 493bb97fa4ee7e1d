package search

import (
	"strings"

	"launchsift/pkg/textmatch"
)

// Candidate pairs an item with its score within one ranking pass. marked means
// the candidate was already emitted into the results this pass; extraction is
// top-K without replacement.
type Candidate struct {
	Item  *Item
	Score float64

	marked  bool
	ordinal int
}

// Comparator is the total order used for extraction and sorted insertion.
// Score descending first; ties break by domain rules; the pass-local ordinal
// is the final fallback, so no two distinct candidates ever compare equal.
type Comparator struct {
	// InstallStatusFirst puts installation status before name when ordering
	// tied library entries; otherwise name compares first.
	InstallStatusFirst bool
}

// Less reports whether a ranks strictly ahead of b.
func (c Comparator) Less(a, b *Candidate) bool {
	return c.compare(a, b) < 0
}

func (c Comparator) compare(a, b *Candidate) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}

	aLib := a.Item.Kind == KindLibraryEntry && a.Item.Library != nil
	bLib := b.Item.Kind == KindLibraryEntry && b.Item.Library != nil
	switch {
	case aLib && bLib:
		if d := c.compareLibrary(a.Item.Library, b.Item.Library); d != 0 {
			return d
		}
	case aLib:
		return -1
	case bLib:
		return 1
	}

	if d := strings.Compare(a.Item.Primary, b.Item.Primary); d != 0 {
		return d
	}
	if d := strings.Compare(a.Item.Secondary, b.Item.Secondary); d != 0 {
		return d
	}
	if d := int(a.Item.Kind) - int(b.Item.Kind); d != 0 {
		return d
	}
	return a.ordinal - b.ordinal
}

func (c Comparator) compareLibrary(a, b *LibraryFacet) int {
	install := func() int {
		if a.Installed != b.Installed {
			if a.Installed {
				return -1
			}
			return 1
		}
		return 0
	}
	name := func() int {
		return strings.Compare(textmatch.Normalize(a.Name), textmatch.Normalize(b.Name))
	}

	steps := []func() int{install, name}
	if !c.InstallStatusFirst {
		steps = []func() int{name, install}
	}
	for _, step := range steps {
		if d := step(); d != 0 {
			return d
		}
	}

	if a.Hidden != b.Hidden {
		if !a.Hidden {
			return -1
		}
		return 1
	}
	if !a.LastActivity.Equal(b.LastActivity) {
		if a.LastActivity.After(b.LastActivity) {
			return -1
		}
		return 1
	}
	return 0
}
