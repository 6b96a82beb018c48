package engine

import "errors"

// Sentinel error kinds raised at the engine boundary. They propagate
// unchanged to callers; the engine performs no internal retries.
var (
	// ErrEmptyCorpus reports a fit over no usable documents.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrInvalidProfile reports empty or whitespace-only query text.
	ErrInvalidProfile = errors.New("invalid profile text")
)
