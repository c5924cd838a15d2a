// Package ranking provides stable descending ranking of scored entities.
package ranking

import "sort"

// Item pairs an entity with its score.
type Item[T any] struct {
	Entity T       `json:"entity"`
	Score  float64 `json:"score"`
}

// Rank returns a copy of items sorted by score descending. The sort is
// genuinely stable: equal scores keep their original input order. The input
// slice is never mutated and empty input yields an empty result.
func Rank[T any](items []Item[T]) []Item[T] {
	ranked := make([]Item[T], len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// RankFunc ranks like Rank but consults tieBreak on exact score ties.
// tieBreak reports whether a should come before b; when it is indifferent
// both ways, input order is preserved. Scores still dominate: tieBreak is
// never allowed to reorder items with different scores.
func RankFunc[T any](items []Item[T], tieBreak func(a, b T) bool) []Item[T] {
	if tieBreak == nil {
		return Rank(items)
	}

	ranked := make([]Item[T], len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return tieBreak(ranked[i].Entity, ranked[j].Entity)
	})

	return ranked
}
