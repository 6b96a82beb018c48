// Package rank scores a query vector against a document matrix and selects
// the top-k candidates deterministically.
package rank

import (
	"sort"
)

// Ranked pairs a corpus index with its similarity score.
type Ranked struct {
	Index int
	Score float64
}

// Scores computes the cosine similarity of query against every row of
// matrix. Both sides are expected to be L2-normalized, so similarity is a
// plain dot product in [0, 1]. A zero-norm query yields all-zero scores by
// construction, never NaN.
func Scores(query []float64, matrix [][]float64) []float64 {
	scores := make([]float64, len(matrix))
	for i, doc := range matrix {
		var dot float64
		for j := range query {
			dot += query[j] * doc[j]
		}
		scores[i] = dot
	}
	return scores
}

// TopK returns the k highest-scoring indices in descending score order.
// Equal scores retain corpus order (stable sort), and k is clamped to
// [0, len(scores)]: k = 0 yields an empty list, oversized k the full one.
func TopK(scores []float64, k int) []Ranked {
	if k < 0 {
		k = 0
	}
	if k > len(scores) {
		k = len(scores)
	}

	ranked := make([]Ranked, len(scores))
	for i, s := range scores {
		ranked[i] = Ranked{Index: i, Score: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked[:k]
}
