package handlers

import (
	"database/sql"
	"net/http"

	"github.com/rso-takle-mamo/booking-service/internal/transport/http/response"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{db: db} }

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports readiness: the process can serve only if the database
// answers a ping.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			response.Fail(w, http.StatusServiceUnavailable, "not_ready", "database unreachable", nil, response.RequestIDFromRequest(r))
			return
		}
	}
	response.Data(w, http.StatusOK, map[string]string{"status": "ready"})
}
