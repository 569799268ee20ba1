// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/danielhkuo/vanarsena/cliparse"
	"github.com/danielhkuo/vanarsena/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unmet expectations: %v", err)
		}
		conn.Close()
	})
	return conn, mock
}

func getTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                 3000,
		DatabaseURL:          "postgres://test",
		SiteURL:              "https://vanarsena.org",
		SessionSecret:        "test-session-secret-0123456789abcdef",
		SessionTTL:           time.Hour,
		DefaultAdminUsername: "admin",
		DefaultAdminPassword: "fallback-password",
		DefaultAdminEmail:    "admin@vanarsena.org",
		LoginMaxFailures:     3,
		LoginLockout:         15 * time.Minute,
		S3Bucket:             "vanarsena-media",
		MaxUploadBytes:       1024,
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("Failed to encode body: %v", err)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

var eventRowColumns = []string{
	"id", "slug", "event_date", "event_time", "location", "tags", "media_urls", "video_urls", "document_urls",
	"featured_image", "visibility", "created_at", "updated_at",
	"locale", "title", "description", "meta_title", "meta_description",
}

func addEventRow(rows *sqlmock.Rows, id int64, slug, date, locale, title string) *sqlmock.Rows {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, slug, date, "09:00", "New Delhi", "{community}", "{}", "{}", "{}",
		"", models.VisibilityPublished, now, now,
		locale, title, "<p>Description</p>", "", "")
}

func validEventBody() map[string]any {
	return map[string]any{
		"event_date":     "2025-08-15",
		"event_time":     "09:00",
		"location":       "Connaught Place",
		"tags":           []string{"community"},
		"title_hi":       "स्वतंत्रता दिवस",
		"title_en":       "Independence Day",
		"description_hi": "<p>ध्वजारोहण</p>",
		"description_en": "<p>Flag hoisting</p>",
		"published":      true,
	}
}
