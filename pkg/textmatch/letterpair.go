package textmatch

import (
	"strings"
	"unicode/utf8"
)

// Normalization selects the denominator of the letter-pair score.
type Normalization int

const (
	// NormalizeBoth divides the match count by the mean token count of both
	// strings. Symmetric; used by CombinedScore.
	NormalizeBoth Normalization = iota
	// NormalizeStr1 divides by the first string's token count only. With the
	// query as first argument this is the cheap preliminary/admission score.
	NormalizeStr1
	// NormalizeStr2 divides by the second string's token count only.
	NormalizeStr2
)

// LetterPairScore computes the word-boundary-aware bigram overlap of a and b.
// Each word contributes its adjacent letter pairs; one-letter words contribute
// a single-letter token. Tokens are matched greedily without replacement, and
// an unmatched single letter earns half credit against either end of an
// unmatched bigram. The result is in [0,1].
func LetterPairScore(a, b string, mode Normalization) float64 {
	na, nb := Normalize(a), Normalize(b)
	if strings.TrimSpace(na) == "" || strings.TrimSpace(nb) == "" {
		return 0
	}
	return letterPairScore(na, nb, mode)
}

// letterPairScore expects normalized, non-blank input.
func letterPairScore(a, b string, mode Normalization) float64 {
	ta := letterPairs(a)
	tb := letterPairs(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	usedB := make([]bool, len(tb))
	matchedA := make([]bool, len(ta))
	var matches float64

	// Exact greedy matching, without replacement.
	for i, t := range ta {
		for j, u := range tb {
			if usedB[j] {
				continue
			}
			if t == u {
				usedB[j] = true
				matchedA[i] = true
				matches++
				break
			}
		}
	}

	// Half credit: a leftover single letter matching either end of a leftover
	// bigram, in both directions.
	for i, t := range ta {
		if matchedA[i] || utf8.RuneCountInString(t) != 1 {
			continue
		}
		for j, u := range tb {
			if usedB[j] || utf8.RuneCountInString(u) != 2 {
				continue
			}
			if strings.HasPrefix(u, t) || strings.HasSuffix(u, t) {
				usedB[j] = true
				matchedA[i] = true
				matches += 0.5
				break
			}
		}
	}
	for j, u := range tb {
		if usedB[j] || utf8.RuneCountInString(u) != 1 {
			continue
		}
		for i, t := range ta {
			if matchedA[i] || utf8.RuneCountInString(t) != 2 {
				continue
			}
			if strings.HasPrefix(t, u) || strings.HasSuffix(t, u) {
				matchedA[i] = true
				usedB[j] = true
				matches += 0.5
				break
			}
		}
	}

	switch mode {
	case NormalizeStr1:
		return clamp01(matches / float64(len(ta)))
	case NormalizeStr2:
		return clamp01(matches / float64(len(tb)))
	default:
		return clamp01(2 * matches / float64(len(ta)+len(tb)))
	}
}

// letterPairs tokenizes a normalized string into per-word adjacent bigrams.
// Words shorter than two runes contribute themselves as a single-letter token.
func letterPairs(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(s) {
		r := []rune(word)
		if len(r) < 2 {
			tokens = append(tokens, word)
			continue
		}
		for i := 0; i < len(r)-1; i++ {
			tokens = append(tokens, string(r[i:i+2]))
		}
	}
	return tokens
}
