// Package vectorize builds term vocabularies and TF-IDF weighted vectors.
package vectorize

import (
	"sort"
)

// Vocabulary is a frozen, ordered mapping from term to vector index.
// Indices are assigned in sorted term order, so two fits over identical
// input always produce an identical Vocabulary.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// buildVocabulary selects terms by document frequency and freezes their
// index assignment. Returns nil if every term is filtered out.
func buildVocabulary(df map[string]int, docCount, minDF int, maxDF float64, maxFeatures int) *Vocabulary {
	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if count < minDF {
			continue
		}
		if float64(count)/float64(docCount) > maxDF {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return nil
	}

	// Over the cap, keep the highest-document-frequency terms, breaking
	// ties lexically for determinism.
	if len(candidates) > maxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if df[candidates[i]] != df[candidates[j]] {
				return df[candidates[i]] > df[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:maxFeatures]
	}

	sort.Strings(candidates)

	index := make(map[string]int, len(candidates))
	for i, term := range candidates {
		index[term] = i
	}
	return &Vocabulary{terms: candidates, index: index}
}

// Size returns the number of retained terms.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Index returns the vector index for term, if retained.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Term returns the term at vector index i.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}
