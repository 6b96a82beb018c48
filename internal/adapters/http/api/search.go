// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	service "github.com/summitrec/summitrec/internal/app"
	"github.com/summitrec/summitrec/internal/domain/types"
	"github.com/summitrec/summitrec/internal/engine"
)

// SearchHandler handles free-text search requests.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles GET /api/search?q=...&limit=N requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing q"))
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	recs, err := h.deps.Search(r.Context(), query, limit)
	switch {
	case errors.Is(err, engine.ErrInvalidProfile):
		writeError(w, http.StatusBadRequest, "invalid_query", err)
		return
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	results := make([]types.SearchResult, len(recs))
	for i, rec := range recs {
		results[i] = types.SearchResult{
			Event: toWireEvent(rec.Event),
			Score: rec.Score,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}
