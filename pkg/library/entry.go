/*
Package library adapts a launcher's game library into search sources: an
indexed base source over all entries, filtered views for genre and platform
drill-down, and a "recently played" sub-source.
*/
package library

import (
	"strings"
	"time"

	"launchsift/pkg/search"
)

// Entry is one library record as delivered by the hosting launcher.
type Entry struct {
	ID           string    `toml:"id"`
	Name         string    `toml:"name"`
	Genres       []string  `toml:"genres,omitempty"`
	Platforms    []string  `toml:"platforms,omitempty"`
	Installed    bool      `toml:"installed,omitempty"`
	Hidden       bool      `toml:"hidden,omitempty"`
	LastActivity time.Time `toml:"last_activity,omitempty"`
}

// HasGenre reports whether the entry carries the genre, case-insensitively.
func (e *Entry) HasGenre(genre string) bool {
	for _, g := range e.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// HasPlatform reports whether the entry carries the platform,
// case-insensitively.
func (e *Entry) HasPlatform(platform string) bool {
	for _, p := range e.Platforms {
		if strings.EqualFold(p, platform) {
			return true
		}
	}
	return false
}

// Item converts the entry into a searchable item. The name is re-read lazily
// so a rename shows up on the next pass without reindexing; genres and
// platforms are secondary keys with reduced weight.
func (e *Entry) Item() *search.Item {
	return &search.Item{
		KeysFunc: func() []search.Key {
			keys := []search.Key{{Text: e.Name, Weight: 1}}
			for _, g := range e.Genres {
				keys = append(keys, search.Key{Text: g, Weight: 0.6})
			}
			for _, p := range e.Platforms {
				keys = append(keys, search.Key{Text: p, Weight: 0.4})
			}
			return keys
		},
		Mode:      search.WeightedMaxScore,
		Primary:   e.Name,
		Secondary: strings.Join(e.Platforms, ", "),
		Kind:      search.KindLibraryEntry,
		Library: &search.LibraryFacet{
			Name:         e.Name,
			Installed:    e.Installed,
			Hidden:       e.Hidden,
			LastActivity: e.LastActivity,
		},
		Details: e,
	}
}
