// Package text turns raw text into normalized unigram and bigram terms.
package text

import (
	"strings"
	"unicode"
)

// bigramJoiner glues two adjacent tokens into a single bigram term,
// e.g. "climate" + "change" -> "climate_change".
const bigramJoiner = "_"

// Tokenize splits text into lowercase terms: every retained unigram followed
// by every bigram formed from adjacent retained unigrams. Punctuation is
// treated as a separator and stopwords are dropped before bigram formation.
// Empty or whitespace-only input yields an empty sequence.
func Tokenize(input string) []string {
	sep := func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}
	fields := strings.FieldsFunc(strings.ToLower(input), sep)

	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if stopwords[f] {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(kept)-1)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+bigramJoiner+kept[i+1])
	}
	return terms
}
