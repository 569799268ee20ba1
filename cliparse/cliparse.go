package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL"`
	// SiteURL is the public origin used for canonical links and hreflang alternates.
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	// AllowedOrigins get credentialed CORS access in addition to SiteURL.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	DefaultAdminUsername string `env:"DEFAULT_ADMIN_USERNAME"`
	DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD"`
	DefaultAdminEmail    string `env:"DEFAULT_ADMIN_EMAIL" envDefault:"admin@vanarsena.org"`

	LoginMaxFailures int           `env:"LOGIN_MAX_FAILURES" envDefault:"5"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT" envDefault:"15m"`

	RedisURL string `env:"REDIS_URL"`

	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3Bucket       string `env:"S3_BUCKET" envDefault:"vanarsena-media"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
	// MediaPublicURL overrides the base URL used for stored object links.
	// Empty means {S3Endpoint}/{S3Bucket}.
	MediaPublicURL string `env:"MEDIA_PUBLIC_URL"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// MediaEnabled reports whether object storage is configured
func (c Config) MediaEnabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

// CORSOrigins lists the origins trusted with admin credentials: the
// site's own origin followed by AllowedOrigins.
func (c Config) CORSOrigins() []string {
	var origins []string
	if u, err := url.Parse(c.SiteURL); err == nil && u.Scheme != "" && u.Host != "" {
		origins = append(origins, u.Scheme+"://"+u.Host)
	}
	return append(origins, c.AllowedOrigins...)
}

// ParseFlags loads .env, reads the environment and then applies flags on top
func ParseFlags(args []string) (Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("vanarsena", flag.ContinueOnError)

	// Network config
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "Public site URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Session signing secret (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Admin session lifetime")

	// Backing services
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL (optional)")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3-compatible endpoint (optional)")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "Media bucket")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}
	if len(cfg.SessionSecret) < 32 {
		return Config{}, errors.New("SESSION_SECRET must be at least 32 characters")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("SESSION_TTL must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, errors.New("MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}
