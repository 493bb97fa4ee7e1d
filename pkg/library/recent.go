package library

import (
	"sort"

	"launchsift/pkg/search"
)

// RecentPrefix is the default query prefix of the recently-played sub-source.
const RecentPrefix = "r:"

// recentSource lists the most recently played visible entries, newest first.
// It reuses the base source's items so result-list identity is stable across
// passes.
type recentSource struct {
	base *Source
	max  int
}

func (r *recentSource) Items() []*search.Item {
	var out []*search.Item
	for _, it := range r.base.Items() {
		e, ok := it.Details.(*Entry)
		if !ok || e.Hidden || e.LastActivity.IsZero() {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a := out[i].Details.(*Entry)
		b := out[j].Details.(*Entry)
		return a.LastActivity.After(b.LastActivity)
	})
	if r.max > 0 && len(out) > r.max {
		out = out[:r.max]
	}
	return out
}

// NewRecentSubSource wraps the base source's recently-played view in a
// prefix-scoped sub-source. With an empty query after the prefix it shows all
// of its items, so typing just the prefix lists recent games.
func NewRecentSubSource(base *Source, prefix string, max int) *search.SubSource {
	if prefix == "" {
		prefix = RecentPrefix
	}
	return &search.SubSource{
		Source:                 &recentSource{base: base, max: max},
		Prefix:                 prefix,
		DisplayAllIfQueryEmpty: true,
	}
}
