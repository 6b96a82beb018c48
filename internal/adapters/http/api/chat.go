// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/summitrec/summitrec/internal/app"
	"github.com/summitrec/summitrec/internal/engine"
	"github.com/summitrec/summitrec/internal/profile"
	"github.com/summitrec/summitrec/pkg/metrics"
)

// ChatHandler answers conversational requests by dispatching on intent
// keywords and reusing the recommend, search and catalog operations.
type ChatHandler struct {
	deps Dependencies
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(deps Dependencies) *ChatHandler {
	return &ChatHandler{deps: deps}
}

// chatRequest mirrors the request schema for POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

const chatHelp = "I can recommend sessions from your profile or LinkedIn URL, " +
	"search the agenda, and list tracks and venues. " +
	"Try: 'recommend events for a climate finance investor' or 'find AI sessions'."

// HandleChat handles POST /api/chat requests.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing message"))
		return
	}

	metrics.RecordChatMessage()
	lower := strings.ToLower(msg)

	switch {
	case profile.IsLinkedInURL(msg) || containsAny(lower, "recommend", "suggest", "for me"):
		recs, _, err := h.deps.Recommend(r.Context(), msg, 0)
		if h.writeChatErr(w, err) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"reply":           "Here are sessions matched to your interests.",
			"recommendations": toWireRecommendations(recs),
		})

	case containsAny(lower, "search", "find", "looking for"):
		recs, err := h.deps.Search(r.Context(), msg, 0)
		if h.writeChatErr(w, err) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"reply":           "These sessions match your query.",
			"recommendations": toWireRecommendations(recs),
		})

	case strings.Contains(lower, "track"):
		tracks, err := h.deps.Tracks(r.Context())
		if h.writeChatErr(w, err) {
			return
		}
		names := make([]string, len(tracks))
		for i, t := range tracks {
			names[i] = t.Name
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"reply":  "The agenda covers these tracks: " + strings.Join(names, ", ") + ".",
			"tracks": tracks,
		})

	case containsAny(lower, "venue", "where"):
		venues, err := h.deps.Venues(r.Context())
		if h.writeChatErr(w, err) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"reply":  "Sessions run across these venues.",
			"venues": venues,
		})

	default:
		writeJSON(w, http.StatusOK, map[string]any{"reply": chatHelp})
	}
}

// writeChatErr maps dispatch errors onto HTTP statuses. Reports whether an
// error response was written.
func (h *ChatHandler) writeChatErr(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, engine.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, "invalid_profile", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
	return true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
