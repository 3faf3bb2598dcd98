package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/pagecraft/pagecraft/internal/pkg/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db      *sql.DB
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// Health returns liveness plus a database ping
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"

	if err := h.db.PingContext(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	utils.WriteJSON(w, code, map[string]interface{}{
		"status":   status,
		"database": dbStatus,
		"version":  h.version,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// Live reports process liveness without touching dependencies
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

// Ready reports whether the service can serve traffic
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unavailable",
		})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "ready"})
}
