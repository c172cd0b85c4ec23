package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"epipulse/internal/pipeline"
)

// HealthHandler reports liveness plus the age of the served snapshot.
type HealthHandler struct {
	result  *pipeline.Result
	started time.Time
}

// NewHealthHandler creates a health handler for the given snapshot.
func NewHealthHandler(result *pipeline.Result) *HealthHandler {
	return &HealthHandler{result: result, started: time.Now()}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":       "ok",
		"uptime":       time.Since(h.started).String(),
		"run_id":       h.result.RunID,
		"generated_at": h.result.GeneratedAt,
		"records":      len(h.result.Records),
	})
}
