// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cache"
	"github.com/danielhkuo/vanarsena/cliparse"
	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/metrics"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/models"
)

type AuthHandler struct {
	db          *sql.DB
	cfg         cliparse.Config
	signer      *auth.SessionSigner
	revocations cache.RevocationStore
	lockouts    cache.LockoutStore
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, signer *auth.SessionSigner, revocations cache.RevocationStore, lockouts cache.LockoutStore, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		db:          db,
		cfg:         cfg,
		signer:      signer,
		revocations: revocations,
		lockouts:    lockouts,
		metrics:     m,
		now:         time.Now,
	}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx := r.Context()
	now := h.now()
	lockKey := strings.ToLower(req.Username)

	state, err := h.lockouts.Get(ctx, lockKey)
	if err != nil {
		slog.Error("failed to read login lockout", "error", err, "username", req.Username)
	}
	if state.Locked(now) {
		h.metrics.LoginAttempt(metrics.LoginLocked)
		h.tooManyAttempts(w, *state.LockedUntil, now)
		return
	}

	user, err := h.verify(r, req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		state, lerr := h.lockouts.RecordFailure(ctx, lockKey, now, h.cfg.LoginMaxFailures, h.cfg.LoginLockout)
		if lerr != nil {
			slog.Error("failed to record login failure", "error", lerr, "username", req.Username)
		}
		slog.Warn("admin login failed",
			"username", req.Username,
			"failed_count", state.FailedCount,
			"remote", middleware.GetClientIP(r),
		)
		if state.Locked(now) {
			h.metrics.LoginAttempt(metrics.LoginLocked)
			h.tooManyAttempts(w, *state.LockedUntil, now)
			return
		}
		h.metrics.LoginAttempt(metrics.LoginFailure)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to verify admin login", "error", err, "username", req.Username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := h.lockouts.Clear(ctx, lockKey); err != nil {
		slog.Error("failed to clear login lockout", "error", err, "username", req.Username)
	}
	if user.ID > 0 {
		if err := db.TouchAdminLogin(ctx, h.db, user.ID); err != nil {
			slog.Error("failed to record admin login", "error", err, "admin_id", user.ID)
		}
	}

	token, session, err := h.signer.Issue(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		slog.Error("failed to issue session", "error", err, "username", user.Username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(h.signer.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	h.metrics.LoginAttempt(metrics.LoginSuccess)
	slog.Info("admin logged in", "username", user.Username, "session_id", session.ID)
	middleware.JSONResponse(w, http.StatusOK, sessionResponse(session))
}

// verify checks credentials against admin_users, then against the
// configured default admin when the user is not stored.
func (h *AuthHandler) verify(r *http.Request, req models.LoginRequest) (*models.AdminUser, error) {
	user, err := db.GetAdminByUsername(r.Context(), h.db, req.Username)
	if err == nil {
		if auth.CheckPassword(user.PasswordHash, req.Password) != nil || user.Role != models.RoleAdmin {
			return nil, auth.ErrInvalidCredentials
		}
		return user, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	if h.cfg.DefaultAdminUsername == "" || h.cfg.DefaultAdminPassword == "" {
		return nil, auth.ErrInvalidCredentials
	}
	userOK := auth.ConstantTimeEqual(req.Username, h.cfg.DefaultAdminUsername)
	passOK := auth.ConstantTimeEqual(req.Password, h.cfg.DefaultAdminPassword)
	if !userOK || !passOK {
		return nil, auth.ErrInvalidCredentials
	}

	slog.Warn("admin login via configured default credentials", "username", req.Username)
	return &models.AdminUser{
		Username: h.cfg.DefaultAdminUsername,
		Email:    h.cfg.DefaultAdminEmail,
		Role:     models.RoleAdmin,
	}, nil
}

func (h *AuthHandler) tooManyAttempts(w http.ResponseWriter, until, now time.Time) {
	retry := int(math.Ceil(until.Sub(now).Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
	middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many failed login attempts. Try again later.")
}

// Logout handles POST /api/admin/logout. It always clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := middleware.Authenticate(r, h.signer, h.revocations); ok {
		if err := h.revocations.MarkRevoked(r.Context(), session.ID, session.ExpiresAt); err != nil {
			slog.Error("failed to revoke session", "error", err, "session_id", session.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Logout failed")
			return
		}
		slog.Info("admin logged out", "username", session.Username, "session_id", session.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// Session handles GET /api/admin/session behind RequireAdmin
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sessionResponse(session))
}

func sessionResponse(s auth.Session) models.SessionResponse {
	return models.SessionResponse{
		Username:  s.Username,
		Email:     s.Email,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt,
	}
}
