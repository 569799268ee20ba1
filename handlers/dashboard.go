// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/middleware"
)

type DashboardHandler struct {
	db *sql.DB
}

func NewDashboardHandler(db *sql.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats handles GET /api/admin/dashboard
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := db.GetDashboardStats(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load dashboard stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch dashboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}
