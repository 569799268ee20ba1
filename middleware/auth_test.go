// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cache"
)

const testSecret = "test-session-secret-0123456789abcdef"

func newTestSigner(t *testing.T) *auth.SessionSigner {
	t.Helper()
	signer, err := auth.NewSessionSigner(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	return signer
}

func TestSessionToken(t *testing.T) {
	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "from-cookie"})
		req.Header.Set("Authorization", "Bearer from-header")
		if got := SessionToken(req); got != "from-cookie" {
			t.Errorf("Expected cookie token first, got %q", got)
		}
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer from-header")
		if got := SessionToken(req); got != "from-header" {
			t.Errorf("Expected bearer token, got %q", got)
		}
	})

	t.Run("none", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		if got := SessionToken(req); got != "" {
			t.Errorf("Expected no token, got %q", got)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	signer := newTestSigner(t)
	revocations := cache.NewMemoryRevocationStore()

	token, session, err := signer.Issue(1, "admin", "admin@vanarsena.org", "admin")
	if err != nil {
		t.Fatal(err)
	}

	var gotUser string
	protected := RequireAdmin(signer, revocations)(func(w http.ResponseWriter, r *http.Request) {
		s, ok := AdminFromContext(r.Context())
		if !ok {
			t.Error("Expected session in context")
		}
		gotUser = s.Username
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/events", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
		w := httptest.NewRecorder()
		protected(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if gotUser != "admin" {
			t.Errorf("Expected admin in context, got %q", gotUser)
		}
	})

	t.Run("api without session", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected(w, httptest.NewRequest("GET", "/api/admin/events", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Error("Expected JSON error")
		}
	})

	t.Run("page without session redirects", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected(w, httptest.NewRequest("GET", "/admin/events?filter=draft", nil))

		if w.Code != http.StatusSeeOther {
			t.Errorf("Expected status 303, got %d", w.Code)
		}
		want := "/admin/login?callbackUrl=%2Fadmin%2Fevents%3Ffilter%3Ddraft"
		if loc := w.Header().Get("Location"); loc != want {
			t.Errorf("Expected redirect to %q, got %q", want, loc)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/events", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		protected(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		if err := revocations.MarkRevoked(context.Background(), session.ID, session.ExpiresAt); err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest("GET", "/api/admin/events", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
		w := httptest.NewRecorder()
		protected(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 after logout, got %d", w.Code)
		}
	})
}

func TestSafeCallback(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/admin/events", "/admin/events"},
		{"/admin/events/new", "/admin/events/new"},
		{"", "/admin"},
		{"https://evil.example.com/admin", "/admin"},
		{"//evil.example.com", "/admin"},
		{"/admin/login", "/admin"},
		{"/en/events", "/admin"},
	}
	for _, tt := range tests {
		if got := SafeCallback(tt.in, "/admin"); got != tt.want {
			t.Errorf("SafeCallback(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoginRedirect(t *testing.T) {
	if got := LoginRedirect("/admin"); got != "/admin/login?callbackUrl=%2Fadmin" {
		t.Errorf("Unexpected redirect %q", got)
	}
	if got := LoginRedirect(""); got != LoginPath {
		t.Errorf("Unexpected redirect %q", got)
	}
}

func TestAuthenticate_RejectsNonAdminRole(t *testing.T) {
	signer := newTestSigner(t)
	revocations := cache.NewMemoryRevocationStore()

	token, _, err := signer.Issue(5, "editor", "editor@vanarsena.org", "editor")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/admin/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if _, ok := Authenticate(req, signer, revocations); ok {
		t.Error("Expected non-admin session to be rejected")
	}

	w := httptest.NewRecorder()
	RequireAdmin(signer, revocations)(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run")
	})(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}
