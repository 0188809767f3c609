package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.UserService.Profile(r.Context(), actor(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health.HealthCheck(r.Context()); err != nil {
			h.Log.Warn("health check failed", zap.Error(err))
			WriteError(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
