// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	repository "github.com/summitrec/summitrec/internal/adapters/repository"
	service "github.com/summitrec/summitrec/internal/app"
	"github.com/summitrec/summitrec/internal/domain/model"
	"github.com/summitrec/summitrec/internal/domain/types"
)

// EventsHandler handles catalog read requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleListEvents handles GET /api/events requests. An optional track
// query parameter filters by track, case-insensitively.
func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	track := strings.TrimSpace(r.URL.Query().Get("track"))
	var (
		events []model.Event
		err    error
	)
	if track != "" {
		events, err = h.deps.EventsByTrack(r.Context(), track)
	} else {
		events, err = h.deps.Events(r.Context())
	}
	if h.writeCatalogErr(w, err) {
		return
	}
	list := toWireEvents(events)

	writeJSON(w, http.StatusOK, map[string]any{
		"events": list,
		"count":  len(list),
	})
}

// HandleGetEvent handles GET /api/events/{id} requests.
func (h *EventsHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/events/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing event id"))
		return
	}

	e, err := h.deps.EventByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	if h.writeCatalogErr(w, err) {
		return
	}

	writeJSON(w, http.StatusOK, toWireEvent(e))
}

// HandleListTracks handles GET /api/tracks requests.
func (h *EventsHandler) HandleListTracks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	tracks, err := h.deps.Tracks(r.Context())
	if h.writeCatalogErr(w, err) {
		return
	}

	out := make([]types.TrackInfo, len(tracks))
	for i, t := range tracks {
		out[i] = types.TrackInfo{Name: t.Name, Count: t.Count}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tracks": out,
		"count":  len(out),
	})
}

// HandleListVenues handles GET /api/venues requests.
func (h *EventsHandler) HandleListVenues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	venues, err := h.deps.Venues(r.Context())
	if h.writeCatalogErr(w, err) {
		return
	}

	out := make([]types.VenueInfo, len(venues))
	for i, v := range venues {
		out[i] = types.VenueInfo{
			Name:    v.Name,
			Address: v.Address,
			Lat:     v.Lat,
			Lon:     v.Lon,
			Events:  v.Events,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"venues": out,
		"count":  len(out),
	})
}

// writeCatalogErr maps catalog errors onto HTTP statuses. Reports whether an
// error response was written.
func (h *EventsHandler) writeCatalogErr(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
	return true
}
