// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
)

type AdminEventHandler struct {
	db *sql.DB
}

func NewAdminEventHandler(db *sql.DB) *AdminEventHandler {
	return &AdminEventHandler{db: db}
}

// List handles GET /api/admin/events?filter=all|published|draft
func (h *AdminEventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	switch filter {
	case "", "all", models.VisibilityPublished, models.VisibilityDraft:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "filter must be all, published or draft")
		return
	}

	events, err := db.ListAdminEvents(r.Context(), h.db, filter)
	if err != nil {
		slog.Error("failed to list admin events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, events)
}

// Get handles GET /api/admin/events/{id}
func (h *AdminEventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	event, err := db.GetAdminEvent(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to get event", "error", err, "event_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, event)
}

// decodeEventInput parses, normalizes and validates an event body. It
// writes the error response itself and reports whether to continue.
func decodeEventInput(w http.ResponseWriter, r *http.Request) (models.EventInput, bool) {
	var in models.EventInput
	if err := middleware.ParseJSONBody(r, &in); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return in, false
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		middleware.ValidationResponse(w, err, fieldMessage(i18n.English, err))
		return in, false
	}
	return in, true
}

// Create handles POST /api/admin/events
func (h *AdminEventHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeEventInput(w, r)
	if !ok {
		return
	}

	id, err := db.CreateEvent(r.Context(), h.db, in)
	if errors.Is(err, db.ErrDuplicateSlug) {
		middleware.ErrorResponse(w, http.StatusConflict, "An event with this slug already exists")
		return
	}
	if err != nil {
		slog.Error("failed to create event", "error", err, "slug", in.Slug)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	admin, _ := middleware.AdminFromContext(r.Context())
	slog.Info("event created", "event_id", id, "slug", in.Slug, "visibility", in.Visibility(), "admin", admin.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		ID:      id,
		Slug:    in.Slug,
		Message: "Event created successfully",
	})
}

// Update handles PUT /api/admin/events/{id}
func (h *AdminEventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	in, ok := decodeEventInput(w, r)
	if !ok {
		return
	}

	err := db.UpdateEvent(r.Context(), h.db, id, in)
	switch {
	case errors.Is(err, db.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	case errors.Is(err, db.ErrDuplicateSlug):
		middleware.ErrorResponse(w, http.StatusConflict, "An event with this slug already exists")
		return
	case err != nil:
		slog.Error("failed to update event", "error", err, "event_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	slog.Info("event updated", "event_id", id, "slug", in.Slug, "visibility", in.Visibility())
	middleware.JSONResponse(w, http.StatusOK, models.CreateEventResponse{
		ID:      id,
		Slug:    in.Slug,
		Message: "Event updated successfully",
	})
}

// Delete handles DELETE /api/admin/events/{id}
func (h *AdminEventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	err := db.DeleteEvent(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete event", "error", err, "event_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	slog.Info("event deleted", "event_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Event deleted successfully"})
}

// Publish handles PATCH /api/admin/events/{id}/publish
func (h *AdminEventHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req models.PublishEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := db.SetEventPublished(r.Context(), h.db, id, req.Published)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to change event visibility", "error", err, "event_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	msg := "Event unpublished"
	if req.Published {
		msg = "Event published"
	}
	slog.Info("event visibility changed", "event_id", id, "published", req.Published)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: msg})
}
