package textmatch

import (
	"sort"
	"strings"
)

// startPenalty controls how quickly the substring score decays as the match
// moves away from the start of the longer string.
const startPenalty = 0.3

// SubstringMatch is the result of LongestCommonSubstring: the longest shared
// run, its score, and every matched rune position in both normalized strings
// (for highlighting).
type SubstringMatch struct {
	Text       string
	Score      float64
	PositionsA []int
	PositionsB []int
}

// LongestCommonSubstring finds the longest common substring of a and b by
// dynamic programming, then greedily claims further non-overlapping runs from
// the longest down so every matched span can be highlighted. Positions index
// runes of the normalized strings.
//
// The score is the longest run's length over the shorter string's length,
// divided by 1 + 0.3*start where start is the run's offset in the longer
// string, so prefix matches beat mid-string matches.
func LongestCommonSubstring(a, b string) SubstringMatch {
	na, nb := Normalize(a), Normalize(b)
	if strings.TrimSpace(na) == "" || strings.TrimSpace(nb) == "" {
		return SubstringMatch{}
	}
	return longestCommonSubstring(na, nb)
}

func longestCommonSubstring(a, b string) SubstringMatch {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return SubstringMatch{}
	}

	claimedA := make([]bool, len(ra))
	claimedB := make([]bool, len(rb))
	var out SubstringMatch
	first := true

	for {
		bestLen, bestI, bestJ := 0, -1, -1
		// dp[j] is the common-suffix length ending at ra[i-1], rb[j-1],
		// broken wherever a rune is already claimed by an earlier run.
		prev := make([]int, len(rb)+1)
		cur := make([]int, len(rb)+1)
		for i := 1; i <= len(ra); i++ {
			for j := 1; j <= len(rb); j++ {
				cur[j] = 0
				if ra[i-1] == rb[j-1] && !claimedA[i-1] && !claimedB[j-1] {
					cur[j] = prev[j-1] + 1
					if cur[j] >= bestLen {
						bestLen = cur[j]
						bestI = i
						bestJ = j
					}
				}
			}
			prev, cur = cur, prev
		}

		if bestLen == 0 {
			break
		}
		// Follow-up runs shorter than two runes are highlight noise.
		if !first && bestLen < 2 {
			break
		}

		for k := 0; k < bestLen; k++ {
			claimedA[bestI-1-k] = true
			claimedB[bestJ-1-k] = true
			out.PositionsA = append(out.PositionsA, bestI-1-k)
			out.PositionsB = append(out.PositionsB, bestJ-1-k)
		}

		if first {
			first = false
			out.Text = string(ra[bestI-bestLen : bestI])
			shorter := len(ra)
			if len(rb) < shorter {
				shorter = len(rb)
			}
			start := bestI - bestLen
			if len(rb) > len(ra) {
				start = bestJ - bestLen
			}
			out.Score = clamp01(float64(bestLen) / float64(shorter) / (1 + startPenalty*float64(start)))
		}
	}

	sort.Ints(out.PositionsA)
	sort.Ints(out.PositionsB)
	return out
}
