// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/summitrec/summitrec/internal/app"
	"github.com/summitrec/summitrec/internal/engine"
)

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// recommendRequest mirrors the request schema for POST /api/recommend.
type recommendRequest struct {
	Profile string `json:"profile"`
	TopK    int    `json:"top_k"`
}

func (rr recommendRequest) validate() error {
	if strings.TrimSpace(rr.Profile) == "" {
		return errors.New("missing profile")
	}
	if rr.TopK < 0 {
		return errors.New("top_k must be positive")
	}
	return nil
}

type profileSummary struct {
	IsLinkedIn bool     `json:"is_linkedin"`
	Username   string   `json:"username,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Interests  []string `json:"interests,omitempty"`
}

// HandleRecommend handles POST /api/recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	recs, p, err := h.deps.Recommend(r.Context(), req.Profile, req.TopK)
	switch {
	case errors.Is(err, engine.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, "invalid_profile", err)
		return
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile": profileSummary{
			IsLinkedIn: p.IsLinkedIn,
			Username:   p.Username,
			Skills:     p.Skills,
			Interests:  p.Interests,
		},
		"recommendations": toWireRecommendations(recs),
		"count":           len(recs),
	})
}
