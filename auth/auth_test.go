// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-session-secret-0123456789abcdef"

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"32 bytes", 32, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
		})
	}

	a, _ := GenerateID(16)
	b, _ := GenerateID(16)
	if a == b {
		t.Error("GenerateID() should produce unique IDs")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Expected bcrypt hash, got %q", hash)
	}

	if err := CheckPassword(hash, "admin123"); err != nil {
		t.Errorf("CheckPassword() with correct password = %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrInvalidCredentials", err)
	}
	if err := CheckPassword("not-a-hash", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("CheckPassword() with malformed hash = %v", err)
	}

	if _, err := HashPassword("", bcrypt.MinCost); err == nil {
		t.Error("HashPassword() should reject empty password")
	}
}

func TestConstantTimeEqual(t *testing.T) {
	if !ConstantTimeEqual("secret", "secret") {
		t.Error("Expected equal strings to match")
	}
	if ConstantTimeEqual("secret", "secreT") || ConstantTimeEqual("secret", "secret1") {
		t.Error("Expected different strings not to match")
	}
}

func TestNewSessionSigner_Validation(t *testing.T) {
	if _, err := NewSessionSigner("short", time.Hour); err == nil {
		t.Error("Expected error for short secret")
	}
	if _, err := NewSessionSigner(testSecret, 0); err == nil {
		t.Error("Expected error for zero TTL")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	signer, err := NewSessionSigner(testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, issued, err := signer.Issue(1, "admin", "admin@vanarsena.org", "admin")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	sess, err := signer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if sess.ID != issued.ID {
		t.Errorf("Session ID mismatch: %s vs %s", sess.ID, issued.ID)
	}
	if sess.Username != "admin" || sess.Role != "admin" || sess.UserID != 1 {
		t.Errorf("Unexpected session %+v", sess)
	}
	if !sess.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Errorf("Expiry mismatch: %s vs %s", sess.ExpiresAt, issued.ExpiresAt)
	}
}

func TestSessionParse_Rejects(t *testing.T) {
	signer, _ := NewSessionSigner(testSecret, time.Hour)
	other, _ := NewSessionSigner("another-secret-0123456789abcdef-xyz", time.Hour)

	valid, _, _ := signer.Issue(1, "admin", "admin@vanarsena.org", "admin")
	foreign, _, _ := other.Issue(1, "admin", "admin@vanarsena.org", "admin")

	parts := strings.Split(valid, ".")
	parts[2] = strings.Split(foreign, ".")[2]
	tampered := strings.Join(parts, ".")

	expiredSigner, _ := NewSessionSigner(testSecret, time.Hour)
	expiredSigner.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, _ := expiredSigner.Issue(1, "admin", "admin@vanarsena.org", "admin")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", foreign},
		{"tampered", tampered},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Parse(tt.token)
			if !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Parse() error = %v, want ErrInvalidSession", err)
			}
		})
	}
}
