package api

import (
	"net/http"
	"time"

	"github.com/focusflow/focusflow-server/internal/api/respond"
)

// healthReader is the read side of a health checker.
type healthReader interface {
	IsHealthy() bool
}

type HealthHandler struct {
	checker healthReader
}

func NewHealthHandler(checker healthReader) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// CheckHealth reports cached service health without touching dependencies.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.checker != nil && !h.checker.IsHealthy() {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
	}
	respond.WriteJSON(w, status, body)
}
