package vectorize

import (
	"math"

	"github.com/summitrec/summitrec/internal/domain/text"
)

// Vectorizer computes sublinear TF-IDF vectors over a fitted vocabulary.
//
// Term frequency uses sublinear scaling: 1 + ln(f) for f > 0. Inverse
// document frequency uses the smoothed convention ln((1+N)/(1+df)) + 1,
// which keeps every retained term's weight strictly positive even for a
// term present in every document. Vectors are L2-normalized so cosine
// similarity reduces to a dot product.
//
// Fit freezes the vocabulary and IDF table; Transform never mutates them,
// so a fitted Vectorizer is safe for concurrent use.
type Vectorizer struct {
	maxFeatures int
	minDF       int
	maxDF       float64

	vocab *Vocabulary
	idf   []float64
}

// New creates an unfitted Vectorizer with configuration options.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		maxFeatures: defaultMaxFeatures,
		minDF:       defaultMinDF,
		maxDF:       defaultMaxDF,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FitTransform fits the vocabulary and IDF statistics on docs and returns
// one normalized vector per document, in corpus order.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokenized[i] = text.Tokenize(doc)
		seen := make(map[string]bool, len(tokenized[i]))
		for _, term := range tokenized[i] {
			if !seen[term] {
				df[term]++
				seen[term] = true
			}
		}
	}

	vocab := buildVocabulary(df, len(docs), v.minDF, v.maxDF, v.maxFeatures)
	if vocab == nil {
		return nil, ErrEmptyCorpus
	}

	idf := make([]float64, vocab.Size())
	n := float64(len(docs))
	for i, term := range vocab.terms {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.vocab = vocab
	v.idf = idf

	matrix := make([][]float64, len(docs))
	for i, tokens := range tokenized {
		matrix[i] = v.vectorize(tokens)
	}
	return matrix, nil
}

// Transform converts text into a normalized vector using the vocabulary and
// IDF statistics frozen at the last FitTransform. Out-of-vocabulary terms
// contribute nothing; text with no retained terms yields a zero vector.
func (v *Vectorizer) Transform(input string) []float64 {
	return v.vectorize(text.Tokenize(input))
}

// Vocabulary returns the fitted vocabulary, or nil before fitting.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

func (v *Vectorizer) vectorize(tokens []string) []float64 {
	vector := make([]float64, v.vocab.Size())

	counts := make(map[int]int, len(tokens))
	for _, term := range tokens {
		if idx, ok := v.vocab.Index(term); ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, count := range counts {
		w := (1 + math.Log(float64(count))) * v.idf[idx]
		vector[idx] = w
		norm += w * w
	}

	// A zero-norm vector stays zero rather than dividing by zero.
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			vector[idx] /= norm
		}
	}
	return vector
}
