package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HandleCreateSession starts a session over a copy of the loaded dataset.
// Filters applied to a session persist until cleared or records are added.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, _ *http.Request) {
	h.base.mu.Lock()
	store := h.base.store.Clone()
	h.base.mu.Unlock()

	id, s := h.sessions.Create(store)

	h.logger.Info().Str("session_id", id).Int("records", store.Len()).Msg("session created")

	writeJSON(w, http.StatusCreated, SessionResponse{
		ID:            id,
		RecordCount:   store.Len(),
		FilteredCount: store.FilteredLen(),
		CreatedAt:     s.createdAt,
	})
}

// HandleGetSession describes a session
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	resp := SessionResponse{
		ID:            id,
		RecordCount:   s.store.Len(),
		FilteredCount: s.store.FilteredLen(),
		CreatedAt:     s.createdAt,
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteSession ends a session
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.sessions.Delete(id) {
		writeError(w, http.StatusNotFound, "session not found", "SESSION_NOT_FOUND")
		return
	}

	h.logger.Info().Str("session_id", id).Msg("session deleted")
	w.WriteHeader(http.StatusNoContent)
}

// HandleSessionSearch ranks a session's filtered scope against a query
func (h *Handler) HandleSessionSearch(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid search request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	h.search(w, s, req)
}

// HandleFilter narrows a session's scope
func (h *Handler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	id, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid filter request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	s.mu.Lock()
	if req.Column != "" {
		s.store.Filter(req.Query, req.Column)
	} else {
		s.store.Filter(req.Query)
	}
	resp := FilterResponse{Count: s.store.FilteredLen(), Total: s.store.Len()}
	s.mu.Unlock()

	h.logger.Info().
		Str("session_id", id).
		Str("filter", req.Query).
		Str("column", req.Column).
		Int("scope", resp.Count).
		Msg("filter applied")

	writeJSON(w, http.StatusOK, resp)
}

// HandleClearFilters resets a session's scope to the full dataset
func (h *Handler) HandleClearFilters(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	s.store.ClearFilters()
	resp := FilterResponse{Count: s.store.FilteredLen(), Total: s.store.Len()}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// HandleSessionAddRecords appends records to a session's dataset and drops
// its filters
func (h *Handler) HandleSessionAddRecords(w http.ResponseWriter, r *http.Request) {
	_, s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.addRecords(w, r, s)
}

// lookup resolves the session named in the URL, writing a 404 if unknown
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (string, *session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found", "SESSION_NOT_FOUND")
		return id, nil, false
	}
	return id, s, true
}

// Routes registers every API route on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Post("/search", h.HandleSearch)
	r.Post("/records", h.HandleAddRecords)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGetSession)
			r.Delete("/", h.HandleDeleteSession)
			r.Post("/search", h.HandleSessionSearch)
			r.Post("/filter", h.HandleFilter)
			r.Delete("/filter", h.HandleClearFilters)
			r.Post("/records", h.HandleSessionAddRecords)
		})
	})
}
