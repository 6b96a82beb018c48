// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/summitrec/summitrec/internal/app"
)

// HistoryHandler handles navigation log requests.
type HistoryHandler struct {
	deps Dependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps Dependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

// trackRequest mirrors the request schema for POST /api/track.
type trackRequest struct {
	Action string         `json:"action"`
	Detail map[string]any `json:"detail"`
}

type ackResponse struct {
	Status string `json:"status"`
}

// HandleTrack handles POST /api/track requests.
func (h *HistoryHandler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Action) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing action"))
		return
	}

	if err := h.deps.Track(r.Context(), req.Action, req.Detail); err != nil {
		if errors.Is(err, service.ErrUnknownAction) {
			writeError(w, http.StatusBadRequest, "unknown_action", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusAccepted, ackResponse{Status: "recorded"})
}

// HandleHistory handles GET /api/history?action=K requests. Omitting action
// returns the whole log in insertion order.
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	action := r.URL.Query().Get("action")
	records, err := h.deps.History(r.Context(), action)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAction) {
			writeError(w, http.StatusBadRequest, "unknown_action", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}
