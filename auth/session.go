// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the admin session cookie
const SessionCookie = "vs_session"

const sessionIssuer = "vanarsena"

// Session is the verified content of an admin session token
type Session struct {
	ID        uuid.UUID
	UserID    int64
	Username  string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type sessionClaims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionSigner issues and verifies HS256 session tokens
type SessionSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionSigner(secret string, ttl time.Duration) (*SessionSigner, error) {
	if len(secret) < 32 {
		return nil, errors.New("session secret must be at least 32 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &SessionSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *SessionSigner) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for an authenticated admin
func (s *SessionSigner) Issue(userID int64, username, email, role string) (string, Session, error) {
	now := s.now().UTC().Truncate(time.Second)
	sess := Session{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  username,
		Email:     email,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID.String(),
			Issuer:    sessionIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, sess, nil
}

// Parse verifies a token and returns its session. Any failure is ErrInvalidSession.
func (s *SessionSigner) Parse(raw string) (Session, error) {
	if raw == "" {
		return Session{}, ErrInvalidSession
	}

	parsed, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidSession
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return Session{}, fmt.Errorf("%w: bad session id", ErrInvalidSession)
	}

	return Session{
		ID:        id,
		UserID:    claims.UserID,
		Username:  claims.Username,
		Email:     claims.Email,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
