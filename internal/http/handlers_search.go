package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// HandleSearch ranks the loaded dataset against a query without touching any
// session state
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid search request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	h.search(w, h.base, req)
}

// search runs req against a session and writes the capped results.
// A blank query is not searched and yields no results.
func (h *Handler) search(w http.ResponseWriter, s *session, req SearchRequest) {
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusOK, SearchResponse{Results: []SearchResult{}, Query: req.Query})
		return
	}

	limit := h.limit(req.Limit)

	s.mu.Lock()
	ranked, err := s.store.Search(req.Query)
	var results []SearchResult
	if err == nil {
		results = toResults(ranked, limit)
	}
	s.mu.Unlock()

	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info().
		Str("query", req.Query).
		Int("results", len(results)).
		Int("total", len(ranked)).
		Int("limit", limit).
		Msg("search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Results: results,
		Count:   len(results),
		Total:   len(ranked),
		Query:   req.Query,
	})
}
