// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
)

type SettingsHandler struct {
	db *sql.DB
}

func NewSettingsHandler(db *sql.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// Get handles GET /api/admin/settings. Unset keys take their defaults.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stored, err := db.GetSettings(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SettingsFromMap(stored))
}

// Update handles PUT /api/admin/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s models.SiteSettings
	if err := middleware.ParseJSONBody(r, &s); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := s.Validate(); err != nil {
		middleware.ValidationResponse(w, err, fieldMessage(i18n.English, err))
		return
	}

	if err := db.SaveSettings(r.Context(), h.db, s.ToMap()); err != nil {
		slog.Error("failed to save settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	slog.Info("site settings updated")
	middleware.JSONResponse(w, http.StatusOK, s)
}
