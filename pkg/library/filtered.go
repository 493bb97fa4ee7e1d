package library

import (
	"strings"

	"launchsift/pkg/filter"
	"launchsift/pkg/search"
)

// Query markers for filter drill-down. A leading comma offers genres that
// widen the current view (OR), a leading ampersand offers genres that narrow
// it (AND).
const (
	anyOfMarker = ","
	allOfMarker = "&"
)

// FilteredSource is a view of a base Source restricted by a predicate filter.
// Views are immutable; drill-down produces new views, so an active sub-search
// is never changed under the user.
type FilteredSource struct {
	base *Source
	flt  filter.Multi[*Entry]
}

// NewFilteredSource returns an unrestricted view of base.
func NewFilteredSource(base *Source) *FilteredSource {
	return &FilteredSource{base: base}
}

// Items returns the base items whose entry passes the filter.
func (f *FilteredSource) Items() []*search.Item {
	all := f.base.Items()
	if f.flt.Empty() {
		return all
	}
	out := make([]*search.Item, 0, len(all))
	for _, it := range all {
		if e, ok := it.Details.(*Entry); ok && f.flt.Eval(e) {
			out = append(out, it)
		}
	}
	return out
}

// QueryItems offers one drill-down item per genre and per platform when the
// query starts with a filter marker. Executing such an item opens a
// sub-search over the view narrowed (or widened) by that predicate; the
// sub-search itself accepts further markers, so filters chain.
func (f *FilteredSource) QueryItems(query string) []*search.Item {
	anyOf := strings.HasPrefix(query, anyOfMarker)
	if !anyOf && !strings.HasPrefix(query, allOfMarker) {
		return nil
	}

	var out []*search.Item
	for _, genre := range f.base.Genres() {
		out = append(out, f.drillDownItem("Genre", genre, genreIs(genre), anyOf))
	}
	for _, platform := range f.base.Platforms() {
		out = append(out, f.drillDownItem("Platform", platform, platformIs(platform), anyOf))
	}
	return out
}

func (f *FilteredSource) drillDownItem(field, value string, pred filter.Predicate[*Entry], anyOf bool) *search.Item {
	marker := allOfMarker
	next := FilteredSource{base: f.base, flt: f.flt.CopyAndAddAll(pred)}
	if anyOf {
		marker = anyOfMarker
		next.flt = f.flt.CopyAndAddAny(pred)
	}

	return &search.Item{
		Keys:      []search.Key{{Text: marker + value, Weight: 1}},
		Primary:   field + ": " + value,
		Secondary: "filter",
		Kind:      search.KindOther,
		Actions: []search.Action{
			&search.SubItemsAction{
				SimpleAction: search.SimpleAction{Label: "Filter by " + value},
				Source: &search.SubSource{
					Source:                 &next,
					Prefix:                 value + ":",
					DisplayAllIfQueryEmpty: true,
				},
			},
		},
	}
}

func genreIs(genre string) filter.Predicate[*Entry] {
	return func(e *Entry) bool { return e.HasGenre(genre) }
}

func platformIs(platform string) filter.Predicate[*Entry] {
	return func(e *Entry) bool { return e.HasPlatform(platform) }
}
