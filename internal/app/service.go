// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	repository "github.com/summitrec/summitrec/internal/adapters/repository"
	"github.com/summitrec/summitrec/internal/domain/model"
	"github.com/summitrec/summitrec/internal/engine"
	"github.com/summitrec/summitrec/internal/navlog"
	"github.com/summitrec/summitrec/internal/profile"
	"github.com/summitrec/summitrec/pkg/logger"
	"github.com/summitrec/summitrec/pkg/metrics"
)

// snapshot bundles a catalog with the engine state fitted from it. Queries
// read one snapshot for their whole lifetime, so a reload can never hand a
// query vectors from a different fit generation.
type snapshot struct {
	catalog repository.Catalog
	state   *engine.State
}

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.Mutex // serializes Start, Stop and Reload

	cur     atomic.Pointer[snapshot]
	tracker *navlog.Tracker

	// Configuration
	eventsFile  string
	events      []model.Event // overrides file loading when set
	maxFeatures int
	minDF       int
	maxDF       float64
	topTerms    int
	defaultTopK int
	maxTopK     int
	searchLimit int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithEventsFile sets the CSV corpus path. Empty keeps the bundled sample
// corpus.
func WithEventsFile(path string) Option {
	return func(s *Service) {
		s.eventsFile = path
	}
}

// WithEvents injects a corpus directly, bypassing file loading.
func WithEvents(events []model.Event) Option {
	return func(s *Service) {
		s.events = events
	}
}

// WithMaxFeatures caps the fitted vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFeatures = n
		}
	}
}

// WithMinDF sets the minimum document frequency for vocabulary terms.
func WithMinDF(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minDF = n
		}
	}
}

// WithMaxDF sets the maximum document-frequency fraction for vocabulary terms.
func WithMaxDF(f float64) Option {
	return func(s *Service) {
		if f > 0 {
			s.maxDF = f
		}
	}
}

// WithTopTerms bounds the matched-topic list per explanation.
func WithTopTerms(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topTerms = n
		}
	}
}

// WithDefaultTopK sets the recommendation count used when a request omits it.
func WithDefaultTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.defaultTopK = k
		}
	}
}

// WithMaxTopK caps the per-request recommendation count.
func WithMaxTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.maxTopK = k
		}
	}
}

// WithDefaultSearchLimit sets the search result count used when a request
// omits it.
func WithDefaultSearchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxFeatures: 5000,
		minDF:       1,
		maxDF:       0.95,
		topTerms:    3,
		defaultTopK: 5,
		maxTopK:     50,
		searchLimit: 10,
		tracker:     navlog.New(),
		logger:      nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the corpus and runs the initial fit.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return err
	}
	s.cur.Store(snap)

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("events", snap.state.CorpusSize()),
		logger.Int("vocabulary", snap.state.VocabularySize()),
	)

	return nil
}

// Stop marks the service stopped. All state is in memory, so there is
// nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")
	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// Reload re-reads the corpus and swaps in a freshly fitted snapshot.
// In-flight queries keep using the snapshot they started with.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}

	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return err
	}
	s.cur.Store(snap)

	s.logger.Info(ctx, "corpus reloaded",
		logger.Int("events", snap.state.CorpusSize()),
		logger.Int("vocabulary", snap.state.VocabularySize()),
	)
	return nil
}

// buildSnapshot loads events and fits the engine. Caller holds s.mu.
func (s *Service) buildSnapshot(ctx context.Context) (*snapshot, error) {
	events := s.events
	switch {
	case events != nil:
		// injected corpus wins
	case s.eventsFile != "":
		var err error
		events, err = repository.LoadCSV(s.eventsFile)
		if err != nil {
			return nil, fmt.Errorf("load corpus: %w", err)
		}
		s.logger.Info(ctx, "loaded event corpus from file",
			logger.String("path", s.eventsFile),
			logger.Int("events", len(events)),
		)
	default:
		events = repository.SampleEvents()
		s.logger.Info(ctx, "using bundled sample corpus",
			logger.Int("events", len(events)),
		)
	}

	start := time.Now()
	state, err := engine.Fit(events,
		engine.WithMaxFeatures(s.maxFeatures),
		engine.WithMinDF(s.minDF),
		engine.WithMaxDF(s.maxDF),
		engine.WithTopTerms(s.topTerms),
	)
	if err != nil {
		return nil, fmt.Errorf("fit corpus: %w", err)
	}

	metrics.RecordFit(float64(time.Since(start).Milliseconds()))
	metrics.UpdateCorpusSize(state.CorpusSize())
	metrics.UpdateVocabularySize(state.VocabularySize())

	return &snapshot{
		catalog: repository.NewMemoryCatalog(events),
		state:   state,
	}, nil
}

// snapshotOrErr returns the current snapshot, or ErrNotStarted before Start.
func (s *Service) snapshotOrErr() (*snapshot, error) {
	snap := s.cur.Load()
	if snap == nil {
		return nil, ErrNotStarted
	}
	return snap, nil
}

// clampTopK resolves a requested count against the default and the cap.
func (s *Service) clampTopK(k, fallback int) int {
	if k <= 0 {
		k = fallback
	}
	if k > s.maxTopK {
		k = s.maxTopK
	}
	return k
}

// Recommend parses attendee input into a profile, ranks the corpus against
// it and logs the interaction. topK <= 0 selects the configured default.
func (s *Service) Recommend(ctx context.Context, input string, topK int) ([]model.Recommendation, profile.Profile, error) {
	snap, err := s.snapshotOrErr()
	if err != nil {
		return nil, profile.Profile{}, err
	}

	topK = s.clampTopK(topK, s.defaultTopK)
	p := profile.Parse(input)

	start := time.Now()
	recs, err := snap.state.Recommend(ctx, p.SearchableText, topK)
	if err != nil {
		metrics.RecordInvalidProfile()
		return nil, p, err
	}
	metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordRecommendation()
	if len(recs) > 0 && recs[0].Score == 0 {
		metrics.RecordZeroScoreQuery()
	}

	s.record(navlog.ActionRecommend, map[string]any{
		"profile_linkedin": p.IsLinkedIn,
		"top_k":            topK,
		"results":          len(recs),
	})

	return recs, p, nil
}

// Search ranks the corpus against a free-text query. limit <= 0 selects the
// configured default.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]model.Recommendation, error) {
	snap, err := s.snapshotOrErr()
	if err != nil {
		return nil, err
	}

	limit = s.clampTopK(limit, s.searchLimit)

	start := time.Now()
	recs, err := snap.state.Search(ctx, query, limit)
	if err != nil {
		metrics.RecordInvalidProfile()
		return nil, err
	}
	metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordSearch()
	if len(recs) > 0 && recs[0].Score == 0 {
		metrics.RecordZeroScoreQuery()
	}

	s.record(navlog.ActionSearch, map[string]any{
		"query":   query,
		"limit":   limit,
		"results": len(recs),
	})

	return recs, nil
}

// Events returns the loaded corpus in load order.
func (s *Service) Events(ctx context.Context) ([]model.Event, error) {
	snap, err := s.snapshotOrErr()
	if err != nil {
		return nil, err
	}
	return snap.catalog.Events(ctx), nil
}

// EventByID returns one event and logs the view. Unknown ids fail with
// repository.ErrNotFound.
func (s *Service) EventByID(ctx context.Context, id string) (model.Event, error) {
	snap, err := s.snapshotOrErr()
	if err != nil {
		return model.Event{}, err
	}
	e, err := snap.catalog.ByID(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	s.record(navlog.ActionView, map[string]any{"event_id": id})
	return e, nil
}

// EventsByTrack returns the events in one track, matched case-insensitively.
func (s *Service) EventsByTrack(ctx context.Context, track string) ([]model.Event, error) {
	snap, err := s.snapshotOrErr()
	if err != nil {
		return nil, err
	}
	return snap.catalog.ByTrack(ctx, track), nil
}

// Tracks returns track labels with event counts, most events first.
func (s *Service) Tracks(ctx context.Context) ([]repository.Track, error) {
	snap, err := s.snapshotOrErr()
	if err != nil {
		return nil, err
	}
	return snap.catalog.Tracks(ctx), nil
}

// Venues returns venues with coordinates and hosted event ids.
func (s *Service) Venues(ctx context.Context) ([]repository.Venue, error) {
	snap, err := s.snapshotOrErr()
	if err != nil {
		return nil, err
	}
	return snap.catalog.Venues(ctx), nil
}

// Track appends a user interaction to the navigation log. Unknown action
// kinds fail with ErrUnknownAction.
func (s *Service) Track(_ context.Context, action string, detail map[string]any) error {
	kind, ok := navlog.ParseAction(action)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	s.record(kind, detail)
	return nil
}

// History returns logged interactions in insertion order. An empty action
// returns everything; an unknown one fails with ErrUnknownAction.
func (s *Service) History(_ context.Context, action string) ([]navlog.Record, error) {
	if action == "" {
		return s.tracker.History(), nil
	}
	kind, ok := navlog.ParseAction(action)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return s.tracker.HistoryByAction(kind), nil
}

// record appends to the navigation log and keeps the gauge current.
func (s *Service) record(action navlog.Action, detail map[string]any) {
	s.tracker.Record(action, detail)
	metrics.UpdateNavigationRecords(s.tracker.Len())
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	stats := map[string]interface{}{
		"started":           started,
		"max_features":      s.maxFeatures,
		"min_df":            s.minDF,
		"max_df":            s.maxDF,
		"navigationRecords": s.tracker.Len(),
	}

	if snap := s.cur.Load(); snap != nil {
		stats["corpusSize"] = snap.state.CorpusSize()
		stats["vocabularySize"] = snap.state.VocabularySize()
	}

	return stats
}
