package search

import "launchsift/pkg/textmatch"

// PreliminaryScore is the cheap letter-pair-only admission score for an item
// against the query, normalized against the query side. It runs before the
// expensive combined score and decides whether the item enters the pass at
// all.
func PreliminaryScore(it *Item, query string) float64 {
	return reduceKeys(it, query, func(q, key string) float64 {
		return textmatch.LetterPairScore(q, key, textmatch.NormalizeStr1)
	})
}

// Score is the full combined score of an item against the query, reduced over
// its weighted keys by the item's ScoreMode.
func Score(it *Item, query string) float64 {
	return reduceKeys(it, query, textmatch.CombinedScore)
}

// reduceKeys scores every positively-weighted, non-blank key and reduces per
// the item's mode. An item with no such keys scores 0; the weightSum guard in
// the average path is unreachable through this filter and only defends
// against NaN if that ever changes.
func reduceKeys(it *Item, query string, score func(q, key string) float64) float64 {
	var (
		weightSum float64
		acc       float64
		best      float64
		worst     float64
		n         int
	)
	for _, k := range it.SearchKeys() {
		if k.Weight <= 0 || k.Text == "" {
			continue
		}
		s := score(query, k.Text) * k.Weight
		if n == 0 {
			best, worst = s, s
		} else {
			if s > best {
				best = s
			}
			if s < worst {
				worst = s
			}
		}
		acc += s
		weightSum += k.Weight
		n++
	}
	if n == 0 {
		return 0
	}
	switch it.Mode {
	case WeightedMaxScore:
		return best
	case WeightedMinScore:
		return worst
	default:
		if weightSum <= 0 {
			weightSum = 1
		}
		return acc / weightSum
	}
}
