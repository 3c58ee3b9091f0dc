package httpapi

import (
	"encoding/json"
	"net/http"
)

// HandleAddRecords appends records to the loaded dataset. Sessions created
// afterwards see them; existing sessions keep their own copy.
func (h *Handler) HandleAddRecords(w http.ResponseWriter, r *http.Request) {
	h.addRecords(w, r, h.base)
}

func (h *Handler) addRecords(w http.ResponseWriter, r *http.Request, s *session) {
	var req AddRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid add records request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, "records are required", "MISSING_RECORDS")
		return
	}

	s.mu.Lock()
	err := s.store.Add(req.Records...)
	total := s.store.Len()
	s.mu.Unlock()

	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to add records")
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info().
		Int("added", len(req.Records)).
		Int("total", total).
		Msg("records added")

	writeJSON(w, http.StatusOK, AddRecordsResponse{
		Added: len(req.Records),
		Total: total,
	})
}
