// cliparse/cliparse_test.go
package cliparse

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("SESSION_SECRET", testSecret)
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h session TTL, got %s", cfg.SessionTTL)
	}
	if !cfg.MediaEnabled() {
		t.Error("expected media to be enabled when S3 endpoint is set")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("S3_ENDPOINT", "")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.S3Bucket != "vanarsena-media" {
		t.Errorf("expected default bucket, got %q", cfg.S3Bucket)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.LoginMaxFailures != 5 {
		t.Errorf("expected 5 login failures, got %d", cfg.LoginMaxFailures)
	}
	if cfg.MediaEnabled() {
		t.Error("media should be disabled without an S3 endpoint")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "postgres://cli", "-site-url", "https://vanarsena.org"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://cli" {
		t.Errorf("expected CLI database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.SiteURL != "https://vanarsena.org" {
		t.Errorf("expected CLI site URL, got %q", cfg.SiteURL)
	}
}

func TestParseFlags_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{
			name:    "missing database URL",
			env:     map[string]string{"DATABASE_URL": "", "SESSION_SECRET": testSecret},
			wantErr: "database URL required",
		},
		{
			name:    "missing session secret",
			env:     map[string]string{"DATABASE_URL": "postgres://test", "SESSION_SECRET": ""},
			wantErr: "SESSION_SECRET required",
		},
		{
			name:    "short session secret",
			env:     map[string]string{"DATABASE_URL": "postgres://test", "SESSION_SECRET": "short"},
			wantErr: "at least 32 characters",
		},
		{
			name:    "invalid port env",
			env:     map[string]string{"DATABASE_URL": "postgres://test", "SESSION_SECRET": testSecret, "PORT": "abc"},
			wantErr: "invalid environment",
		},
		{
			name:    "port out of range",
			env:     map[string]string{"DATABASE_URL": "postgres://test", "SESSION_SECRET": testSecret},
			args:    []string{"-p", "70000"},
			wantErr: "invalid port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SITE_URL", "https://vanarsena.org/hi")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.vanarsena.org,http://localhost:5173")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	got := strings.Join(cfg.CORSOrigins(), " ")
	want := "https://vanarsena.org https://admin.vanarsena.org http://localhost:5173"
	if got != want {
		t.Errorf("expected origins %q, got %q", want, got)
	}
}
