package library

import (
	"sort"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"launchsift/pkg/search"
	"launchsift/pkg/textmatch"
)

// Source is the indexed base source over the whole library. Besides the plain
// item pool it maintains a radix index over normalized names for cheap exact
// prefix lookups, e.g. "did the user type the start of a title verbatim".
type Source struct {
	provider func() []*Entry

	mu      sync.RWMutex
	entries []*Entry
	items   []*search.Item
	trie    *patricia.Trie
}

// NewSource builds a source over the entries returned by provider and indexes
// them. Call Reindex after the underlying library changes.
func NewSource(provider func() []*Entry) *Source {
	s := &Source{provider: provider}
	s.Reindex()
	return s
}

// Reindex re-reads the provider and rebuilds the item pool and the name index.
func (s *Source) Reindex() {
	entries := s.provider()
	items := make([]*search.Item, 0, len(entries))
	trie := patricia.NewTrie()
	for _, e := range entries {
		it := e.Item()
		items = append(items, it)

		key := patricia.Prefix(textmatch.Normalize(e.Name))
		if existing := trie.Get(key); existing != nil {
			trie.Set(key, append(existing.([]*search.Item), it))
		} else {
			trie.Insert(key, []*search.Item{it})
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.items = items
	s.trie = trie
	s.mu.Unlock()
}

// Items returns the full item pool.
func (s *Source) Items() []*search.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Entries returns the current entry snapshot.
func (s *Source) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Len returns the number of indexed entries.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Lookup returns the items whose normalized name starts with prefix, sorted by
// name. Normalization matches scoring, so "emile" finds "Émile".
func (s *Source) Lookup(prefix string) []*search.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*search.Item
	_ = s.trie.VisitSubtree(patricia.Prefix(textmatch.Normalize(prefix)), func(p patricia.Prefix, item patricia.Item) error {
		out = append(out, item.([]*search.Item)...)
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		return textmatch.Normalize(out[i].Primary) < textmatch.Normalize(out[j].Primary)
	})
	return out
}

// Genres returns the distinct genres across all entries, sorted.
func (s *Source) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.entries, func(e *Entry) []string { return e.Genres })
}

// Platforms returns the distinct platforms across all entries, sorted.
func (s *Source) Platforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.entries, func(e *Entry) []string { return e.Platforms })
}

func distinct(entries []*Entry, field func(*Entry) []string) []string {
	seen := make(map[string]string)
	for _, e := range entries {
		for _, v := range field(e) {
			seen[textmatch.Normalize(v)] = v
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
