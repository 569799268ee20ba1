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
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cache"
	"github.com/danielhkuo/vanarsena/metrics"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
)

var adminColumns = []string{"id", "username", "email", "password_hash", "role", "created_at", "last_login"}

type authFixture struct {
	handler     *AuthHandler
	mock        sqlmock.Sqlmock
	signer      *auth.SessionSigner
	revocations *cache.MemoryRevocationStore
	metrics     *metrics.Metrics
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	conn, mock := newMock(t)
	cfg := getTestConfig()

	signer, err := auth.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	revocations := cache.NewMemoryRevocationStore()
	m := metrics.New()

	return authFixture{
		handler:     NewAuthHandler(conn, cfg, signer, revocations, cache.NewMemoryLockoutStore(), m),
		mock:        mock,
		signer:      signer,
		revocations: revocations,
		metrics:     m,
	}
}

func (f authFixture) expectAdmin(t *testing.T, id int64, username, password, role string) {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	f.mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE username")).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows(adminColumns).
			AddRow(id, username, username+"@vanarsena.org", hash, role, time.Now(), nil))
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	f.expectAdmin(t, 1, "priya", "correct horse", models.RoleAdmin)
	f.mock.ExpectExec(regexp.QuoteMeta("UPDATE admin_users SET last_login")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	f.handler.Login(w, jsonRequest(t, "POST", "/api/admin/login",
		models.LoginRequest{Username: " priya ", Password: "correct horse"}))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.SessionResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Username != "priya" || resp.Role != models.RoleAdmin {
		t.Errorf("Unexpected session %+v", resp)
	}

	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("Expected session cookie")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.MaxAge != 3600 {
		t.Errorf("Unexpected cookie attributes %+v", cookie)
	}
	session, err := f.signer.Parse(cookie.Value)
	if err != nil || session.UserID != 1 {
		t.Errorf("Cookie does not carry a valid session: %v %+v", err, session)
	}
	if got := testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues(metrics.LoginSuccess)); got != 1 {
		t.Errorf("Expected 1 successful login counted, got %v", got)
	}
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name string
		role string
	}{
		{"wrong password", models.RoleAdmin},
		{"non-admin role", "editor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			password := "correct horse"
			if tt.name == "wrong password" {
				password = "something else"
			}
			f.expectAdmin(t, 2, "ravi", "correct horse", tt.role)

			w := httptest.NewRecorder()
			f.handler.Login(w, jsonRequest(t, "POST", "/api/admin/login",
				models.LoginRequest{Username: "ravi", Password: password}))

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("Expected status 401, got %d", w.Code)
			}
			if sessionCookie(w) != nil {
				t.Error("Expected no session cookie")
			}
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	f := newAuthFixture(t)

	for _, body := range []string{`{"username":"","password":"x"}`, `{"username":"a"}`, `not json`} {
		w := httptest.NewRecorder()
		f.handler.Login(w, jsonRequest(t, "POST", "/api/admin/login", body))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Body %s: expected status 400, got %d", body, w.Code)
		}
	}
}

func TestLogin_LocksOutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	limit := getTestConfig().LoginMaxFailures

	for i := 1; i <= limit; i++ {
		f.expectAdmin(t, 3, "meera", "right", models.RoleAdmin)

		w := httptest.NewRecorder()
		f.handler.Login(w, jsonRequest(t, "POST", "/api/admin/login",
			models.LoginRequest{Username: "meera", Password: "wrong"}))

		want := http.StatusUnauthorized
		if i == limit {
			want = http.StatusTooManyRequests
		}
		if w.Code != want {
			t.Fatalf("Attempt %d: expected status %d, got %d", i, want, w.Code)
		}
	}

	// Locked accounts are refused before the password is checked, even
	// with the right password and a differently cased username.
	w := httptest.NewRecorder()
	f.handler.Login(w, jsonRequest(t, "POST", "/api/admin/login",
		models.LoginRequest{Username: "MEERA", Password: "right"}))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if got := testutil.ToFloat64(f.metrics.LoginAttempts.WithLabelValues(metrics.LoginLocked)); got != 2 {
		t.Errorf("Expected 2 locked attempts counted, got %v", got)
	}
}

func TestLogin_DefaultAdminFallback(t *testing.T) {
	cfg := getTestConfig()

	tests := []struct {
		name       string
		password   string
		wantStatus int
	}{
		{"configured credentials", cfg.DefaultAdminPassword, http.StatusOK},
		{"wrong password", "guess", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE username")).
				WithArgs(cfg.DefaultAdminUsername).
				WillReturnRows(sqlmock.NewRows(adminColumns))

			w := httptest.NewRecorder()
			f.handler.Login(w, jsonRequest(t, "POST", "/api/admin/login",
				models.LoginRequest{Username: cfg.DefaultAdminUsername, Password: tt.password}))

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK {
				var resp models.SessionResponse
				json.NewDecoder(w.Body).Decode(&resp)
				if resp.Email != cfg.DefaultAdminEmail {
					t.Errorf("Expected email %q, got %q", cfg.DefaultAdminEmail, resp.Email)
				}
			}
		})
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)

	token, session, err := f.signer.Issue(1, "priya", "priya@vanarsena.org", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Failed to issue session: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	f.handler.Logout(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if c := sessionCookie(w); c == nil || c.MaxAge >= 0 {
		t.Errorf("Expected cookie to be cleared, got %+v", c)
	}

	revoked, err := f.revocations.IsRevoked(t.Context(), session.ID)
	if err != nil || !revoked {
		t.Errorf("Expected session to be revoked, got %v %v", revoked, err)
	}

	// The revoked token no longer authenticates
	if _, ok := middleware.Authenticate(req, f.signer, f.revocations); ok {
		t.Error("Expected revoked token to be rejected")
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	f := newAuthFixture(t)

	w := httptest.NewRecorder()
	f.handler.Logout(w, httptest.NewRequest("POST", "/api/admin/logout", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestSession(t *testing.T) {
	f := newAuthFixture(t)

	w := httptest.NewRecorder()
	f.handler.Session(w, httptest.NewRequest("GET", "/api/admin/session", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without session, got %d", w.Code)
	}

	session := auth.Session{Username: "priya", Email: "priya@vanarsena.org", Role: models.RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}
	req := httptest.NewRequest("GET", "/api/admin/session", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), session))
	w = httptest.NewRecorder()
	f.handler.Session(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resp models.SessionResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Username != "priya" {
		t.Errorf("Expected username priya, got %q", resp.Username)
	}
}
