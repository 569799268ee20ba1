// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
)

// Public event list paging
const (
	DefaultEventLimit = 10
	MaxEventLimit     = 100
)

type EventHandler struct {
	db *sql.DB
}

func NewEventHandler(db *sql.DB) *EventHandler {
	return &EventHandler{db: db}
}

// requestLocale reads ?locale= and falls back to the cookie and
// Accept-Language. ok is false for an unsupported explicit locale.
func requestLocale(r *http.Request) (i18n.Locale, bool) {
	raw := r.URL.Query().Get("locale")
	if raw == "" {
		return i18n.ResolveLocale(r), true
	}
	return i18n.Parse(raw)
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	locale, ok := requestLocale(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "locale must be hi or en")
		return
	}

	query := db.EventQuery{
		Locale: locale.String(),
		Tag:    q.Get("tag"),
		Limit:  DefaultEventLimit,
	}

	switch t := q.Get("type"); t {
	case "", "all":
		query.Type = db.EventsAll
	case db.EventsUpcoming, db.EventsPast:
		query.Type = t
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "type must be upcoming, past or all")
		return
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		query.Limit = min(limit, MaxEventLimit)
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		query.Offset = offset
	}

	events, total, err := db.ListPublishedEvents(r.Context(), h.db, query)
	if err != nil {
		slog.Error("failed to list events", "error", err, "locale", query.Locale, "type", query.Type)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventListResponse{
		Events:  events,
		Total:   total,
		HasMore: query.Offset+len(events) < total,
	})
}

// GetBySlug handles GET /api/events/{slug}
func (h *EventHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	locale, ok := requestLocale(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "locale must be hi or en")
		return
	}

	event, err := db.GetPublishedEventBySlug(r.Context(), h.db, slug, locale.String())
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to get event", "error", err, "slug", slug)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, event)
}
