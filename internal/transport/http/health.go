package http

import (
	"net/http"

	"github.com/Raisondetr3/tasklist-service/internal/service"
)

func (h *HTTPHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.health.Health(r.Context())

	statusCode := http.StatusOK
	if health.Status == service.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, r, statusCode, health)
}
