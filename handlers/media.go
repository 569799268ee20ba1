// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cliparse"
	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/metrics"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
	"github.com/danielhkuo/vanarsena/storage"
)

// multipartOverhead is allowed on top of the file size for form framing
const multipartOverhead = 1 << 20

type MediaHandler struct {
	db       *sql.DB
	store    storage.MediaStore
	bucket   string
	maxBytes int64
	metrics  *metrics.Metrics
}

// NewMediaHandler wires uploads to store. A nil store makes uploads and
// deletes of stored objects answer 503.
func NewMediaHandler(db *sql.DB, store storage.MediaStore, cfg cliparse.Config, m *metrics.Metrics) *MediaHandler {
	return &MediaHandler{
		db:       db,
		store:    store,
		bucket:   cfg.S3Bucket,
		maxBytes: cfg.MaxUploadBytes,
		metrics:  m,
	}
}

// List handles GET /api/admin/media?filter=all|image|video|document
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	switch filter {
	case "", "all", models.MediaImage, models.MediaVideo, models.MediaDocument:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "filter must be all, image, video or document")
		return
	}

	files, err := db.ListMediaFiles(r.Context(), h.db, filter)
	if err != nil {
		slog.Error("failed to list media", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch media")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, files)
}

// Upload handles POST /api/admin/media/upload with multipart field "file"
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, storage.ErrNotConfigured.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	contentType := uploadContentType(header.Header.Get("Content-Type"), header.Filename)
	if !models.IsAllowedMediaType(contentType) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "File type not allowed")
		return
	}
	category := models.MediaCategory(contentType)

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate media ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}
	key := storage.ObjectKey(category, id, header.Filename)

	url, err := h.store.Put(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		slog.Error("failed to store media", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	media := models.MediaFile{
		ID:           id,
		Filename:     path.Base(key),
		OriginalName: header.Filename,
		FileType:     contentType,
		FileSize:     header.Size,
		URL:          url,
		Bucket:       h.bucket,
		ObjectKey:    key,
	}
	if err := db.InsertMediaFile(r.Context(), h.db, media); err != nil {
		slog.Error("failed to record media", "error", err, "key", key)
		if derr := h.store.Delete(r.Context(), key); derr != nil {
			slog.Error("failed to remove orphaned media object", "error", derr, "key", key)
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	h.metrics.MediaUploaded(category, header.Size)
	slog.Info("media uploaded", "media_id", id, "key", key, "type", contentType, "size", header.Size)
	middleware.JSONResponse(w, http.StatusCreated, media)
}

// uploadContentType prefers the part's declared type and falls back to
// the filename extension.
func uploadContentType(declared, filename string) string {
	ct := strings.ToLower(strings.TrimSpace(declared))
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); byExt != "" {
		return byExt
	}
	return ct
}

// Delete handles DELETE /api/admin/media/{id}. A stored object is removed
// before its row so a failed delete can be retried. Rows that only point at
// an external URL (seeded media) have no object and are deleted directly.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	media, err := db.GetMediaFile(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}
	if err != nil {
		slog.Error("failed to get media", "error", err, "media_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete media")
		return
	}

	if h.ownsObject(media) {
		if h.store == nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, storage.ErrNotConfigured.Error())
			return
		}
		if err := h.store.Delete(r.Context(), media.ObjectKey); err != nil {
			slog.Error("failed to delete media object", "error", err, "key", media.ObjectKey)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete media")
			return
		}
	}

	if err := db.DeleteMediaFile(r.Context(), h.db, id); err != nil && !errors.Is(err, db.ErrNotFound) {
		slog.Error("failed to delete media row", "error", err, "media_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete media")
		return
	}

	slog.Info("media deleted", "media_id", id, "key", media.ObjectKey, "bucket", media.Bucket)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Media deleted"})
}

// ownsObject reports whether media refers to an object in the configured bucket
func (h *MediaHandler) ownsObject(media *models.MediaFile) bool {
	return media.ObjectKey != "" && media.Bucket == h.bucket
}
