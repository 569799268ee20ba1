// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
	"github.com/danielhkuo/vanarsena/seed"
)

type SeedHandler struct {
	db *sql.DB
}

func NewSeedHandler(db *sql.DB) *SeedHandler {
	return &SeedHandler{db: db}
}

// Seed handles POST /api/admin/seed
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := seed.Run(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to seed database", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to seed database")
		return
	}

	msg := "Database seeded successfully"
	if res == (seed.Result{}) {
		msg = "Database already contains data; nothing was seeded"
	}
	middleware.JSONResponse(w, http.StatusOK, models.SeedResponse{
		Events:   res.Events,
		Media:    res.Media,
		Contacts: res.Contacts,
		Settings: res.Settings,
		Message:  msg,
	})
}
