// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/metrics"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
)

type ContactHandler struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

func NewContactHandler(db *sql.DB, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{db: db, metrics: m}
}

// Accept normalizes, validates and stores a contact form in loc. Validation
// failures are returned as *models.FieldError.
func (h *ContactHandler) Accept(ctx context.Context, req models.ContactRequest, loc i18n.Locale) (int64, error) {
	req.Normalize()
	req.Locale = loc.String()
	if err := req.Validate(); err != nil {
		return 0, err
	}

	id, err := db.SaveContactSubmission(ctx, h.db, req)
	if err != nil {
		return 0, err
	}

	h.metrics.ContactSubmitted(req.Locale)
	slog.Info("contact submission received",
		"contact_id", id,
		"locale", req.Locale,
		"volunteer_interest", req.VolunteerInterest,
	)
	return id, nil
}

// Submit handles POST /api/contact. Messages are in the submission's
// locale, falling back to the request locale.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	loc := i18n.ResolveLocale(r)

	var req models.ContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, i18n.T(loc, "contact.form.errorMessage"))
		return
	}
	if l, ok := i18n.Parse(req.Locale); ok {
		loc = l
	}

	id, err := h.Accept(r.Context(), req, loc)
	var fe *models.FieldError
	if errors.As(err, &fe) {
		middleware.ValidationResponse(w, err, fieldMessage(loc, err))
		return
	}
	if err != nil {
		slog.Error("failed to save contact submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, i18n.T(loc, "contact.form.errorMessage"))
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.ContactResponse{
		ID:      id,
		Message: i18n.T(loc, "contact.form.successMessage"),
	})
}

// List handles GET /api/admin/contacts?status=
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "all" {
		status = ""
	}
	if status != "" && !models.IsValidContactStatus(status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be unread, read or replied")
		return
	}

	contacts, err := db.ListContactSubmissions(r.Context(), h.db, status)
	if err != nil {
		slog.Error("failed to list contacts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch contact submissions")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, contacts)
}

// Get handles GET /api/admin/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	contact, err := db.GetContactSubmission(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contact submission not found")
		return
	}
	if err != nil {
		slog.Error("failed to get contact", "error", err, "contact_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch contact submission")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, contact)
}

// UpdateStatus handles PATCH /api/admin/contacts/{id}
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	var req models.UpdateContactStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !models.IsValidContactStatus(req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be unread, read or replied")
		return
	}

	err := db.UpdateContactStatus(r.Context(), h.db, id, req.Status)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contact submission not found")
		return
	}
	if err != nil {
		slog.Error("failed to update contact", "error", err, "contact_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update contact submission")
		return
	}

	slog.Info("contact status updated", "contact_id", id, "status", req.Status)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Status updated"})
}

// Delete handles DELETE /api/admin/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	err := db.DeleteContactSubmission(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contact submission not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete contact", "error", err, "contact_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete contact submission")
		return
	}

	slog.Info("contact deleted", "contact_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Contact submission deleted"})
}
