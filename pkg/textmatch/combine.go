package textmatch

import "strings"

// Blend weights. Letter-pair overlap is the primary, robust signal; the
// substring and word scores refine prefix and word-order sensitivity.
const (
	weightLetterPair = 18.0
	weightSubstring  = 1.0
	weightWordMatch  = 1.0
)

// CombinedScore blends the three scorers into a single [0,1] match score for
// a query against one key. Blank query or key scores 0 without running any
// scorer.
func CombinedScore(query, key string) float64 {
	q, k := Normalize(query), Normalize(key)
	if strings.TrimSpace(q) == "" || strings.TrimSpace(k) == "" {
		return 0
	}

	lp := letterPairScore(q, k, NormalizeBoth)
	ss := longestCommonSubstring(q, k).Score
	wm := WordMatchScore(q, k, DefaultWordThreshold)

	score := (weightLetterPair*lp + weightSubstring*ss + weightWordMatch*wm) /
		(weightLetterPair + weightSubstring + weightWordMatch)
	return clamp01(score)
}
