package httpapi

import "net/http"

// HandleHealth returns API health status and record count
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.base.mu.Lock()
	count := h.base.store.Len()
	h.base.mu.Unlock()

	resp := HealthResponse{
		Status:      "healthy",
		RecordCount: count,
		Sessions:    h.sessions.Count(),
	}

	h.logger.Debug().Int("record_count", count).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
