// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/danielhkuo/vanarsena/models"
)

func expectCreateEvent(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events")).
		WithArgs("independence-day", "2025-08-15", "09:00", "Connaught Place",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			models.VisibilityPublished, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO event_translations")).
		WithArgs(id, "hi", "स्वतंत्रता दिवस", "<p>ध्वजारोहण</p>", "स्वतंत्रता दिवस", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO event_translations")).
		WithArgs(id, "en", "Independence Day", "<p>Flag hoisting</p>", "Independence Day", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestCreateEvent(t *testing.T) {
	conn, mock := newMock(t)
	handler := NewAdminEventHandler(conn)
	expectCreateEvent(mock, 42)

	w := httptest.NewRecorder()
	handler.Create(w, jsonRequest(t, "POST", "/api/admin/events", validEventBody()))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.CreateEventResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ID != 42 || resp.Slug != "independence-day" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(body map[string]any)
		wantField string
	}{
		{"missing hindi title", func(b map[string]any) { b["title_hi"] = "  " }, "title_hi"},
		{"missing english title", func(b map[string]any) { delete(b, "title_en") }, "title_en"},
		{"bad slug", func(b map[string]any) { b["slug"] = "Not A Slug!" }, "slug"},
		{"bad date", func(b map[string]any) { b["event_date"] = "15/08/2025" }, "event_date"},
		{"bad time", func(b map[string]any) { b["event_time"] = "9am" }, "event_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, _ := newMock(t)
			handler := NewAdminEventHandler(conn)

			body := validEventBody()
			tt.mutate(body)

			w := httptest.NewRecorder()
			handler.Create(w, jsonRequest(t, "POST", "/api/admin/events", body))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			if resp := decodeError(t, w); resp.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q (%s)", tt.wantField, resp.Field, resp.Message)
			}
		})
	}
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	conn, _ := newMock(t)
	handler := NewAdminEventHandler(conn)

	w := httptest.NewRecorder()
	handler.Create(w, jsonRequest(t, "POST", "/api/admin/events", "{not json"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateEvent_DuplicateSlug(t *testing.T) {
	conn, mock := newMock(t)
	handler := NewAdminEventHandler(conn)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	handler.Create(w, jsonRequest(t, "POST", "/api/admin/events", validEventBody()))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetAdminEvent(t *testing.T) {
	conn, mock := newMock(t)
	handler := NewAdminEventHandler(conn)

	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	columns := append(append([]string{}, eventRowColumns[:13]...),
		"hi_title", "hi_description", "hi_meta_title", "hi_meta_description",
		"en_title", "en_description", "en_meta_title", "en_meta_description")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			7, "winter-drive", "2026-12-20", "", "", "{}", "{}", "{}", "{}", "", models.VisibilityDraft, now, now,
			"शीतकालीन अभियान", "", "शीतकालीन अभियान", "",
			"Winter Drive", "", "Winter Drive", ""))

	req := httptest.NewRequest("GET", "/api/admin/events/7", nil)
	req.SetPathValue("id", "7")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var event models.AdminEvent
	json.NewDecoder(w.Body).Decode(&event)
	if event.Published || event.En.Title != "Winter Drive" || event.Hi.Title != "शीतकालीन अभियान" {
		t.Errorf("Unexpected event %+v", event)
	}
}

func TestAdminEvents_InvalidID(t *testing.T) {
	conn, _ := newMock(t)
	handler := NewAdminEventHandler(conn)

	for _, id := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest("DELETE", "/api/admin/events/"+id, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected status 400, got %d", id, w.Code)
		}
	}
}

func TestListAdminEvents_BadFilter(t *testing.T) {
	conn, _ := newMock(t)
	handler := NewAdminEventHandler(conn)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/api/admin/events?filter=archived", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestPublishEvent(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		rowsAffected int64
		wantStatus   int
		wantMessage  string
	}{
		{"publish", `{"published":true}`, 1, http.StatusOK, "Event published"},
		{"unpublish", `{"published":false}`, 1, http.StatusOK, "Event unpublished"},
		{"missing event", `{"published":true}`, 0, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			handler := NewAdminEventHandler(conn)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET visibility")).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			req := jsonRequest(t, "PATCH", "/api/admin/events/3/publish", tt.body)
			req.SetPathValue("id", "3")
			w := httptest.NewRecorder()
			handler.Publish(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantMessage != "" {
				var resp models.MessageResponse
				json.NewDecoder(w.Body).Decode(&resp)
				if resp.Message != tt.wantMessage {
					t.Errorf("Expected message %q, got %q", tt.wantMessage, resp.Message)
				}
			}
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	conn, mock := newMock(t)
	handler := NewAdminEventHandler(conn)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("DELETE", "/api/admin/events/9", nil)
	req.SetPathValue("id", "9")
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}
