package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinedScoreIdentity(t *testing.T) {
	for _, s := range []string{"zelda", "The Legend of Zelda", "x"} {
		assert.InDelta(t, 1.0, CombinedScore(s, s), 1e-6, "CombinedScore(%q,%q)", s, s)
	}
}

func TestCombinedScoreEmpty(t *testing.T) {
	assert.Zero(t, CombinedScore("", "zelda"))
	assert.Zero(t, CombinedScore("zelda", ""))
	assert.Zero(t, CombinedScore(" \t ", "zelda"))
}

func TestCombinedScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"zeld", "The Legend of Zelda"},
		{"mario", "Mario Kart 8"},
		{"doom", "Doom Eternal"},
		{"xyz", "The Legend of Zelda"},
	}
	for _, p := range pairs {
		got := CombinedScore(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestCombinedScoreDiscriminates(t *testing.T) {
	q := "zeld"
	hit := CombinedScore(q, "The Legend of Zelda")
	miss := CombinedScore(q, "Rocket League")
	assert.Greater(t, hit, miss)
}
