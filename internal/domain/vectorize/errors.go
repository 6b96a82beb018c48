package vectorize

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrEmptyCorpus reports a fit over zero documents, or a corpus whose
	// every term was filtered by the document-frequency bounds.
	ErrEmptyCorpus = errors.New("empty corpus")
)
