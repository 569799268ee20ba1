// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cache"
	"github.com/danielhkuo/vanarsena/models"
)

// LoginPath is where unauthenticated admin page requests are sent
const LoginPath = "/admin/login"

type sessionKey struct{}

// SessionToken returns the raw session token from the session cookie or
// an Authorization: Bearer header.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(auth.SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// WithSession stores s in ctx
func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// AdminFromContext returns the session set by RequireAdmin
func AdminFromContext(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(auth.Session)
	return s, ok
}

// Authenticate resolves the admin session of r. Non-admin roles, revoked
// sessions and failed revocation lookups count as no session.
func Authenticate(r *http.Request, signer *auth.SessionSigner, revocations cache.RevocationStore) (auth.Session, bool) {
	raw := SessionToken(r)
	if raw == "" {
		return auth.Session{}, false
	}

	session, err := signer.Parse(raw)
	if err != nil || session.Role != models.RoleAdmin {
		return auth.Session{}, false
	}

	if revocations != nil {
		revoked, err := revocations.IsRevoked(r.Context(), session.ID)
		if err != nil {
			slog.Error("failed to check session revocation", "session_id", session.ID, "error", err)
			return auth.Session{}, false
		}
		if revoked {
			return auth.Session{}, false
		}
	}
	return session, true
}

// RequireAdmin rejects requests without a valid admin session. API
// requests get a JSON 401; page requests are redirected to the login page
// with a callbackUrl back to where they were going.
func RequireAdmin(signer *auth.SessionSigner, revocations cache.RevocationStore) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := Authenticate(r, signer, revocations)
			if !ok {
				if strings.HasPrefix(r.URL.Path, "/api/") {
					ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
					return
				}
				http.Redirect(w, r, LoginRedirect(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			next(w, r.WithContext(WithSession(r.Context(), session)))
		}
	}
}

// LoginRedirect builds the login URL returning to callback afterwards
func LoginRedirect(callback string) string {
	if callback == "" || callback == LoginPath {
		return LoginPath
	}
	return LoginPath + "?callbackUrl=" + url.QueryEscape(callback)
}

// SafeCallback returns callback when it is a local admin path and
// fallback otherwise.
func SafeCallback(callback, fallback string) string {
	if !strings.HasPrefix(callback, "/admin") || strings.HasPrefix(callback, "//") || strings.Contains(callback, "\\") {
		return fallback
	}
	if strings.HasPrefix(callback, LoginPath) {
		return fallback
	}
	return callback
}
