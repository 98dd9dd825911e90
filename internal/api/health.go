package api

import (
	"net/http"

	"study-backend/internal/api/respond"
	"study-backend/internal/core/study"
	"study-backend/internal/store"
)

// HealthHandler reports service liveness and store reachability.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a HealthHandler over the given store.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	// Exists doubles as a store reachability probe; the document itself may
	// legitimately be absent.
	if _, err := h.store.Exists(r.Context(), study.DocKnowledgeBase); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
