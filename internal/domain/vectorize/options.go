package vectorize

// Default vectorizer configuration constants.
const (
	defaultMaxFeatures = 5000
	defaultMinDF       = 1
	defaultMaxDF       = 0.95
)

// Option applies a configuration option to the Vectorizer.
type Option func(*Vectorizer)

// WithMaxFeatures caps the vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.maxFeatures = n
		}
	}
}

// WithMinDF drops terms occurring in fewer than n documents.
func WithMinDF(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.minDF = n
		}
	}
}

// WithMaxDF drops terms whose document-frequency fraction exceeds f.
func WithMaxDF(f float64) Option {
	return func(v *Vectorizer) {
		if f > 0 && f <= 1 {
			v.maxDF = f
		}
	}
}
