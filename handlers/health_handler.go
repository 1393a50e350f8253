package handlers

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/nevrodda11/torny-aws-api/constants"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		serverErrorResponse(w, r, "Database unavailable", err)
		return
	}

	successResponse(w, r, http.StatusOK, "ok", nil)
}
