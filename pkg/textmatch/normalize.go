/*
Package textmatch implements the string similarity scorers behind launchsift's
ranking: a word-aware letter-pair overlap score, a longest-common-substring
score that also reports matched positions for highlighting, and a word-level
alignment score built on edit distance. CombinedScore blends the three into a
single value in [0,1].

All scorers normalize their inputs through Normalize before matching, so raw
display strings can be passed directly. Normalize is idempotent; pre-normalized
input is not harmed.
*/
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// strippedPunct is the fixed punctuation set removed during normalization.
// Hyphens stay: the word scorer treats them as word boundaries.
const strippedPunct = ".,:;!?'\"()[]" + "’‘“”`´™®"

// marks drops non-spacing marks, enclosing marks and modifier symbols left
// over after canonical decomposition, which is what strips diacritics.
var marks = runes.Remove(runes.Predicate(func(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Sk, r)
}))

// Normalize prepares a string for matching: decompose, drop combining marks,
// recompose, lowercase, strip the fixed punctuation set. Pure and idempotent.
func Normalize(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFD, marks, norm.NFC), s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedPunct, r) {
			return -1
		}
		return r
	}, out)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
