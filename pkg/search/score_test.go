package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreModes(t *testing.T) {
	// "zelda" matches the first key perfectly and the second not at all, so
	// the three modes separate cleanly.
	keys := []Key{
		{Text: "zelda", Weight: 1},
		{Text: "qqqq", Weight: 1},
	}
	cases := []struct {
		mode ScoreMode
		want float64
	}{
		{WeightedAverage, 0.5},
		{WeightedMaxScore, 1.0},
		{WeightedMinScore, 0.0},
	}
	for _, tc := range cases {
		it := &Item{Keys: keys, Mode: tc.mode}
		assert.InDelta(t, tc.want, Score(it, "zelda"), 0.05, "mode %d", tc.mode)
	}
}

func TestScoreWeighting(t *testing.T) {
	it := &Item{
		Keys: []Key{
			{Text: "zelda", Weight: 1},
			{Text: "zelda", Weight: 0.5},
		},
		Mode: WeightedMinScore,
	}
	// Both keys match perfectly; the min of score*weight is the half-weight key.
	assert.InDelta(t, 0.5, Score(it, "zelda"), 1e-6)
}

func TestScoreSkipsUnusableKeys(t *testing.T) {
	it := &Item{Keys: []Key{
		{Text: "zelda", Weight: 0},
		{Text: "", Weight: 1},
		{Text: "zelda", Weight: -1},
	}}
	assert.Zero(t, Score(it, "zelda"), "no positively-weighted keys means score 0")
	assert.Zero(t, PreliminaryScore(it, "zelda"))
}

func TestScoreRereadsLazyKeys(t *testing.T) {
	text := "mario"
	it := &Item{KeysFunc: func() []Key {
		return []Key{{Text: text, Weight: 1}}
	}}
	assert.Less(t, Score(it, "zelda"), 0.1)

	text = "zelda"
	assert.InDelta(t, 1.0, Score(it, "zelda"), 1e-6, "keys must be re-read, not cached")
}

func TestPreliminaryScoreIsQueryNormalized(t *testing.T) {
	it := &Item{Keys: []Key{{Text: "The Legend of Zelda", Weight: 1}}}
	// Every query bigram appears in the key, so admission is certain even
	// though the key is much longer than the query.
	assert.InDelta(t, 1.0, PreliminaryScore(it, "zeld"), 1e-9)
	assert.Less(t, Score(it, "zeld"), 1.0)
}
