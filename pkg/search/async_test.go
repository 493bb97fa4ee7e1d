package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asyncSource runs fn as its async stage; the embedded StaticSource is the
// synchronous pool.
type asyncSource struct {
	StaticSource
	fn func(ctx context.Context, query string, ranked []Candidate) ([]*Item, error)
}

func (a *asyncSource) ItemsAsync(ctx context.Context, query string, ranked []Candidate) ([]*Item, error) {
	return a.fn(ctx, query, ranked)
}

func keyedItem(primary, key string) *Item {
	return &Item{
		Keys:    []Key{{Text: key, Weight: 1}},
		Primary: primary,
		Kind:    KindOther,
	}
}

func TestAsyncInsertsSorted(t *testing.T) {
	late := keyedItem("middle", "zelda")
	src := &asyncSource{
		StaticSource: StaticSource{
			keyedItem("alpha", "zelda"),
			keyedItem("bravo", "zelda epic mega ultra collection"),
		},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			return []*Item{late}, nil
		},
	}
	s := newTestSession(t, testParams(), src)

	results := s.Search(context.Background(), "zelda")
	// A perfect-scoring arrival ties with "alpha" and goes after it, but
	// outranks the weaker "bravo".
	assert.Equal(t, []string{"alpha", "middle", "bravo"}, titles(results))
}

func TestAsyncTieGoesAfterDisplayed(t *testing.T) {
	sync := keyedItem("alpha", "zelda")
	late := keyedItem("alpha", "zelda")
	src := &asyncSource{
		StaticSource: StaticSource{sync},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			return []*Item{late}, nil
		},
	}
	s := newTestSession(t, testParams(), src)

	results := s.Search(context.Background(), "zelda")
	require.Len(t, results, 2)
	assert.Same(t, sync, results[0].Item, "displayed entries keep their slot on a full tie")
	assert.Same(t, late, results[1].Item)
}

func TestAsyncFailureKeepsSyncResults(t *testing.T) {
	src := &asyncSource{
		StaticSource: StaticSource{keyedItem("alpha", "zelda")},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			return nil, errors.New("remote unavailable")
		},
	}
	s := newTestSession(t, testParams(), src)

	results := s.Search(context.Background(), "zelda")
	assert.Equal(t, []string{"alpha"}, titles(results))
}

func TestAsyncPanicContained(t *testing.T) {
	src := &asyncSource{
		StaticSource: StaticSource{keyedItem("alpha", "zelda")},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			panic("boom")
		},
	}
	s := newTestSession(t, testParams(), src)

	assert.Equal(t, []string{"alpha"}, titles(s.Search(context.Background(), "zelda")))
	// The worker survives and serves the next generation.
	assert.Equal(t, []string{"alpha"}, titles(s.Search(context.Background(), "zeld")))
}

func TestAsyncDuplicateDropped(t *testing.T) {
	shared := keyedItem("alpha", "zelda")
	src := &asyncSource{
		StaticSource: StaticSource{shared},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			return []*Item{shared}, nil
		},
	}
	s := newTestSession(t, testParams(), src)

	assert.Len(t, s.Search(context.Background(), "zelda"), 1)
}

func TestAsyncBelowThresholdDropped(t *testing.T) {
	src := &asyncSource{
		StaticSource: StaticSource{keyedItem("alpha", "zelda")},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			return []*Item{keyedItem("noise", "mario")}, nil
		},
	}
	s := newTestSession(t, testParams(), src)

	assert.Equal(t, []string{"alpha"}, titles(s.Search(context.Background(), "zelda")))
}

func TestAsyncBeyondMaxDropped(t *testing.T) {
	src := &asyncSource{
		StaticSource: StaticSource{
			keyedItem("alpha", "zelda"),
			keyedItem("bravo", "zelda"),
		},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			return []*Item{keyedItem("late", "zelda quest mega ultra")}, nil
		},
	}
	params := testParams()
	params.MaxResults = 2
	s := newTestSession(t, params, src)

	results := s.Search(context.Background(), "zelda")
	assert.Equal(t, []string{"alpha", "bravo"}, titles(results))
}

func TestAsyncReceivesRankedPrefix(t *testing.T) {
	var mu sync.Mutex
	var got []string
	src := &asyncSource{
		StaticSource: StaticSource{keyedItem("alpha", "zelda")},
		fn: func(_ context.Context, _ string, ranked []Candidate) ([]*Item, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, c := range ranked {
				got = append(got, c.Item.Primary)
			}
			return nil, nil
		},
	}
	s := newTestSession(t, testParams(), src)

	s.Search(context.Background(), "zelda")
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"alpha"}, got, "async sources see the synchronous ranking")
}

// The async capability must survive SubSource wrapping, same as the query
// capability.
func TestAsyncSubSourceKeepsCapability(t *testing.T) {
	src := &asyncSource{
		StaticSource: StaticSource{keyedItem("alpha", "zelda")},
		fn: func(context.Context, string, []Candidate) ([]*Item, error) {
			return []*Item{keyedItem("late", "zelda")}, nil
		},
	}
	s := newTestSession(t, testParams(), StaticSource{keyedItem("root", "zelda")})
	s.Nav().Push(&SubSource{Source: src, Prefix: "a:"})

	results := s.Search(context.Background(), "a: zelda")
	assert.Contains(t, titles(results), "late", "the wrapped source must be consulted inside the sub-search")
	assert.NotContains(t, titles(results), "root")
}

func TestStaleGenerationSuppressed(t *testing.T) {
	src := &asyncSource{
		StaticSource: StaticSource{
			keyedItem("zelda game", "zelda game"),
			keyedItem("mario game", "mario game"),
		},
		fn: func(_ context.Context, query string, _ []Candidate) ([]*Item, error) {
			return []*Item{keyedItem("async "+query, query)}, nil
		},
	}
	params := testParams()
	params.AsyncDelay = 50 * time.Millisecond
	s := newTestSession(t, params, src)

	// The first generation is still inside its debounce window when the
	// second arrives; its async contribution must never surface.
	s.SetQuery("zelda")
	time.Sleep(10 * time.Millisecond)
	results := s.Search(context.Background(), "mario")

	assert.Contains(t, titles(results), "async mario")
	assert.NotContains(t, titles(results), "async zelda")
	for _, r := range results {
		assert.NotEqual(t, "zelda game", r.Item.Primary, "stale synchronous results are replaced")
	}
}
