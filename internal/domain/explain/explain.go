// Package explain derives the dominant shared terms between a query and a
// matched document and renders a templated rationale.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/summitrec/summitrec/internal/domain/vectorize"
)

// Score tiers for the templated explanation text.
const (
	highTier = 0.70
	goodTier = 0.40
)

// DefaultTopTerms bounds the matched-topic list when callers pass no limit.
const DefaultTopTerms = 3

// Explain reports why a document matched a query. The elementwise product
// of the two vectors identifies the terms contributing most to the score;
// the topTerms largest positive contributors become the matched topics.
// When nothing contributes, the rationale falls back to a generic phrase
// with an empty topic set.
func Explain(query, doc []float64, score float64, vocab *vectorize.Vocabulary, topTerms int) (string, []string) {
	if topTerms <= 0 {
		topTerms = DefaultTopTerms
	}

	type contribution struct {
		index  int
		weight float64
	}
	var contributions []contribution
	for i := range query {
		if w := query[i] * doc[i]; w > 0 {
			contributions = append(contributions, contribution{index: i, weight: w})
		}
	}
	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].weight > contributions[j].weight
	})
	if len(contributions) > topTerms {
		contributions = contributions[:topTerms]
	}

	if len(contributions) == 0 {
		return "General interest overlap", nil
	}

	topics := make([]string, len(contributions))
	for i, c := range contributions {
		topics[i] = vocab.Term(c.index)
	}

	var tier string
	switch {
	case score >= highTier:
		tier = "Highly relevant to your interests"
	case score >= goodTier:
		tier = "Good match for your profile"
	default:
		tier = "Potentially related"
	}

	return fmt.Sprintf("%s. Covers: %s", tier, strings.Join(topics, ", ")), topics
}
