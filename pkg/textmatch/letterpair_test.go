package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterPairScoreIdentity(t *testing.T) {
	for _, s := range []string{"zelda", "the legend of zelda", "a", "x y z"} {
		for _, mode := range []Normalization{NormalizeBoth, NormalizeStr1, NormalizeStr2} {
			assert.InDelta(t, 1.0, LetterPairScore(s, s, mode), 1e-9, "LP(%q,%q) mode %d", s, s, mode)
		}
	}
}

func TestLetterPairScoreEmpty(t *testing.T) {
	assert.Zero(t, LetterPairScore("", "zelda", NormalizeBoth))
	assert.Zero(t, LetterPairScore("zelda", "", NormalizeBoth))
	assert.Zero(t, LetterPairScore("   ", "zelda", NormalizeStr1))
}

// Query-side normalization is the preliminary score: every query bigram found
// in the key counts fully, regardless of the key's length.
func TestLetterPairScoreQueryNormalized(t *testing.T) {
	assert.InDelta(t, 1.0, LetterPairScore("zeld", "The Legend of Zelda", NormalizeStr1), 1e-9)
	assert.Less(t, LetterPairScore("zeld", "The Legend of Zelda", NormalizeBoth), 1.0)
}

// Word-boundary bigram extraction differs per direction when lengths differ,
// so the score need not be symmetric under one-sided normalization.
func TestLetterPairScoreAsymmetry(t *testing.T) {
	ab := LetterPairScore("fiwebro", "firefox web browser", NormalizeStr1)
	ba := LetterPairScore("firefox web browser", "fiwebro", NormalizeStr1)
	assert.InDelta(t, 5.0/6.0, ab, 1e-9)
	assert.InDelta(t, 5.0/14.0, ba, 1e-9)
	assert.NotEqual(t, ab, ba)
}

func TestLetterPairHalfCredit(t *testing.T) {
	// "a" has no bigram in common with "ab" but earns a 0.5 cross-match
	// against the bigram's leading letter.
	got := LetterPairScore("a", "ab", NormalizeStr1)
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestLetterPairScoreOrdering(t *testing.T) {
	// Closer strings must score higher than unrelated ones.
	close := LetterPairScore("mario", "mario kart", NormalizeBoth)
	far := LetterPairScore("mario", "tetris", NormalizeBoth)
	assert.Greater(t, close, far)
}
