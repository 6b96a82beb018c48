// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	repository "github.com/summitrec/summitrec/internal/adapters/repository"
	"github.com/summitrec/summitrec/internal/domain/model"
	"github.com/summitrec/summitrec/internal/domain/types"
	"github.com/summitrec/summitrec/internal/navlog"
	"github.com/summitrec/summitrec/internal/profile"
	"github.com/summitrec/summitrec/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommend ranks the corpus against attendee input. topK <= 0 selects
	// the service default.
	Recommend(ctx context.Context, input string, topK int) ([]model.Recommendation, profile.Profile, error)

	// Search ranks the corpus against a free-text query.
	Search(ctx context.Context, query string, limit int) ([]model.Recommendation, error)

	// Read operations expose the loaded catalog.
	Events(ctx context.Context) ([]model.Event, error)
	EventByID(ctx context.Context, id string) (model.Event, error)
	EventsByTrack(ctx context.Context, track string) ([]model.Event, error)
	Tracks(ctx context.Context) ([]repository.Track, error)
	Venues(ctx context.Context) ([]repository.Venue, error)

	// Navigation log operations.
	Track(ctx context.Context, action string, detail map[string]any) error
	History(ctx context.Context, action string) ([]navlog.Record, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	searchHandler    *SearchHandler
	chatHandler      *ChatHandler
	eventsHandler    *EventsHandler
	historyHandler   *HistoryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps),
		searchHandler:    NewSearchHandler(deps),
		chatHandler:      NewChatHandler(deps),
		eventsHandler:    NewEventsHandler(deps),
		historyHandler:   NewHistoryHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	mux.HandleFunc("/api/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "recommend"))
	mux.HandleFunc("/api/search", MetricsMiddleware(s.searchHandler.HandleSearch, "search"))
	mux.HandleFunc("/api/chat", MetricsMiddleware(s.chatHandler.HandleChat, "chat"))
	mux.HandleFunc("/api/events", MetricsMiddleware(s.eventsHandler.HandleListEvents, "events"))
	mux.HandleFunc("/api/events/", MetricsMiddleware(s.eventsHandler.HandleGetEvent, "event"))
	mux.HandleFunc("/api/tracks", MetricsMiddleware(s.eventsHandler.HandleListTracks, "tracks"))
	mux.HandleFunc("/api/venues", MetricsMiddleware(s.eventsHandler.HandleListVenues, "venues"))
	mux.HandleFunc("/api/track", MetricsMiddleware(s.historyHandler.HandleTrack, "track"))
	mux.HandleFunc("/api/history", MetricsMiddleware(s.historyHandler.HandleHistory, "history"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// toWireEvent converts a domain event to its JSON shape.
func toWireEvent(e model.Event) types.Event {
	out := types.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Topics:      e.Topics,
		Location:    e.Location,
		Venue:       e.Venue,
		Speakers:    e.Speakers,
		Capacity:    e.Capacity,
		Track:       e.Track,
		Lat:         e.Lat,
		Lon:         e.Lon,
		Address:     e.Address,
		Website:     e.Website,
	}
	if !e.StartTime.IsZero() {
		out.StartTime = e.StartTime.Format(time.RFC3339)
	}
	if !e.EndTime.IsZero() {
		out.EndTime = e.EndTime.Format(time.RFC3339)
	}
	return out
}

func toWireEvents(events []model.Event) []types.Event {
	out := make([]types.Event, len(events))
	for i, e := range events {
		out[i] = toWireEvent(e)
	}
	return out
}

func toWireRecommendations(recs []model.Recommendation) []types.Recommendation {
	out := make([]types.Recommendation, len(recs))
	for i, r := range recs {
		out[i] = types.Recommendation{
			Event:           toWireEvent(r.Event),
			Score:           r.Score,
			MatchPercentage: r.MatchPercentage,
			Explanation:     r.Explanation,
			MatchedTopics:   r.MatchedTopics,
		}
	}
	return out
}
