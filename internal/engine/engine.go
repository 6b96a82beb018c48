// Package engine fits an event corpus into an immutable recommendation
// state and answers similarity queries against it.
package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/summitrec/summitrec/internal/domain/explain"
	"github.com/summitrec/summitrec/internal/domain/model"
	"github.com/summitrec/summitrec/internal/domain/rank"
	"github.com/summitrec/summitrec/internal/domain/vectorize"
)

// State holds everything produced by a single fit: the corpus in fixed
// order, the frozen vocabulary and IDF table, and one normalized vector per
// event. A State is immutable after Fit and safe for concurrent queries.
// Document vectors never leave the State, so a vector can never be used
// against a state from a different fit generation.
type State struct {
	events     []model.Event
	vectorizer *vectorize.Vectorizer
	matrix     [][]float64
	topTerms   int
}

// Option applies a fit configuration option.
type Option func(*fitConfig)

type fitConfig struct {
	vectorizerOpts []vectorize.Option
	topTerms       int
}

// WithMaxFeatures caps the vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(c *fitConfig) {
		c.vectorizerOpts = append(c.vectorizerOpts, vectorize.WithMaxFeatures(n))
	}
}

// WithMinDF drops terms occurring in fewer than n documents.
func WithMinDF(n int) Option {
	return func(c *fitConfig) {
		c.vectorizerOpts = append(c.vectorizerOpts, vectorize.WithMinDF(n))
	}
}

// WithMaxDF drops terms whose document-frequency fraction exceeds f.
func WithMaxDF(f float64) Option {
	return func(c *fitConfig) {
		c.vectorizerOpts = append(c.vectorizerOpts, vectorize.WithMaxDF(f))
	}
}

// WithTopTerms bounds the matched-topic list per explanation.
func WithTopTerms(n int) Option {
	return func(c *fitConfig) {
		if n > 0 {
			c.topTerms = n
		}
	}
}

// Fit runs the one-time, blocking vocabulary and weighting pass over events
// and returns the frozen query state. It fails with ErrEmptyCorpus when
// events is empty or when document-frequency filtering leaves no terms.
func Fit(events []model.Event, opts ...Option) (*State, error) {
	cfg := fitConfig{topTerms: explain.DefaultTopTerms}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(events) == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := make([]string, len(events))
	for i, e := range events {
		docs[i] = e.SearchableText()
	}

	v := vectorize.New(cfg.vectorizerOpts...)
	matrix, err := v.FitTransform(docs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyCorpus, err)
	}

	// Copy so later mutation of the caller's slice cannot leak into the
	// frozen state.
	corpus := make([]model.Event, len(events))
	copy(corpus, events)

	return &State{
		events:     corpus,
		vectorizer: v,
		matrix:     matrix,
		topTerms:   cfg.topTerms,
	}, nil
}

// Recommend ranks the corpus against profileText and returns the top k
// events with scores, match percentages, and explanations. It fails with
// ErrInvalidProfile when profileText is empty or whitespace-only; a profile
// made entirely of unseen or filtered terms is a defined zero-score result,
// not an error.
func (s *State) Recommend(_ context.Context, profileText string, topK int) ([]model.Recommendation, error) {
	if strings.TrimSpace(profileText) == "" {
		return nil, ErrInvalidProfile
	}

	query := s.vectorizer.Transform(profileText)
	scores := rank.Scores(query, s.matrix)
	top := rank.TopK(scores, topK)

	recs := make([]model.Recommendation, len(top))
	for i, r := range top {
		explanation, topics := explain.Explain(query, s.matrix[r.Index], r.Score, s.vectorizer.Vocabulary(), s.topTerms)
		recs[i] = model.Recommendation{
			Event:           s.events[r.Index],
			Score:           r.Score,
			MatchPercentage: int(math.Round(r.Score * 100)),
			Explanation:     explanation,
			MatchedTopics:   topics,
		}
	}
	return recs, nil
}

// Search is the same computation as Recommend under a different name; the
// service layer distinguishes the two only by the action kind it logs.
func (s *State) Search(ctx context.Context, query string, limit int) ([]model.Recommendation, error) {
	return s.Recommend(ctx, query, limit)
}

// Events returns the corpus in fit order.
func (s *State) Events() []model.Event {
	return s.events
}

// CorpusSize returns the number of events in the fitted corpus.
func (s *State) CorpusSize() int {
	return len(s.events)
}

// VocabularySize returns the number of retained vocabulary terms.
func (s *State) VocabularySize() int {
	return s.vectorizer.Vocabulary().Size()
}
