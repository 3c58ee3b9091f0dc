package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dsjohal14/quickspot/internal/scope/db"
	"github.com/dsjohal14/quickspot/internal/scope/record"
	"github.com/rs/zerolog"
)

// session serializes access to a store, which does no locking of its own
type session struct {
	mu        sync.Mutex
	store     *db.Store
	createdAt time.Time
}

func newSession(store *db.Store) *session {
	return &session{store: store, createdAt: time.Now()}
}

// Handler contains HTTP handlers for the API
type Handler struct {
	base       *session
	sessions   *Sessions
	maxResults int
	logger     zerolog.Logger
}

// NewHandler creates a new HTTP handler over the loaded store. maxResults caps
// every result list; 0 means unlimited.
func NewHandler(store *db.Store, maxResults int, logger zerolog.Logger) *Handler {
	return &Handler{
		base:       newSession(store),
		sessions:   NewSessions(),
		maxResults: maxResults,
		logger:     logger,
	}
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeStoreError maps datastore failures onto API errors
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	var (
		missingKey *db.MissingKeyFieldError
		badScorer  *db.InvalidScorerError
		badConfig  *db.ConfigurationError
	)

	switch {
	case errors.As(err, &missingKey):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: "record is missing its key field", Code: "MISSING_KEY_FIELD", Details: err.Error(),
		})
	case errors.As(err, &badConfig):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid records", Code: "INVALID_RECORDS", Details: err.Error(),
		})
	case errors.As(err, &badScorer):
		h.logger.Error().Err(err).Msg("scorer failed")
		writeError(w, http.StatusInternalServerError, "failed to score results", "INVALID_SCORER")
	default:
		h.logger.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "search failed", "SEARCH_ERROR")
	}
}

// limit returns the effective result cap for a request
func (h *Handler) limit(requested int) int {
	if requested > 0 && (h.maxResults == 0 || requested < h.maxResults) {
		return requested
	}
	return h.maxResults
}

// toResults copies ranked records into response form, applying the cap
func toResults(recs []*record.Record, limit int) []SearchResult {
	if limit > 0 && limit < len(recs) {
		recs = recs[:limit]
	}

	results := make([]SearchResult, len(recs))
	for i, r := range recs {
		results[i] = SearchResult{
			Record:      r,
			KeyValue:    r.KeyValue,
			Score:       r.Score,
			LengthDelta: r.LengthDelta,
		}
	}
	return results
}
