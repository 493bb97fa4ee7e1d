package textmatch

import (
	"math"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
)

// DefaultWordThreshold is the minimum per-word similarity for a word pair to
// count as matched in WordMatchScore.
const DefaultWordThreshold = 0.5

// WordMatchScore aligns the words of a against the words of b. Each word of a
// greedily takes the most similar unmatched word of b (normalized Levenshtein
// similarity) at or above threshold. The summed similarities are normalized by
// a's word count, then raised to 1+(1-orderScore) where orderScore is the
// fraction of consecutive matched pairs that kept their relative order, so
// reorderings are penalized super-linearly.
func WordMatchScore(a, b string, threshold float64) float64 {
	na, nb := Normalize(a), Normalize(b)
	wa := splitWords(na)
	wb := splitWords(nb)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	used := make([]bool, len(wb))
	var matchedIdx []int
	var sum float64
	for _, w := range wa {
		bestSim := 0.0
		bestJ := -1
		for j, u := range wb {
			if used[j] {
				continue
			}
			sim, err := edlib.StringsSimilarity(w, u, edlib.Levenshtein)
			if err != nil {
				continue
			}
			if float64(sim) > bestSim {
				bestSim = float64(sim)
				bestJ = j
			}
		}
		if bestJ >= 0 && bestSim >= threshold {
			used[bestJ] = true
			sum += bestSim
			matchedIdx = append(matchedIdx, bestJ)
		}
	}
	if len(matchedIdx) == 0 {
		return 0
	}

	base := clamp01(sum / float64(len(wa)))
	return clamp01(math.Pow(base, 1+(1-orderScore(matchedIdx))))
}

// orderScore is the fraction of consecutive matched-index pairs in ascending
// order. A single match is fully ordered.
func orderScore(idx []int) float64 {
	if len(idx) < 2 {
		return 1
	}
	ordered := 0
	for k := 1; k < len(idx); k++ {
		if idx[k] > idx[k-1] {
			ordered++
		}
	}
	return float64(ordered) / float64(len(idx)-1)
}

// splitWords breaks a normalized string on whitespace and hyphen runs.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
}
