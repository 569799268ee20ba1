package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cache"
	"github.com/danielhkuo/vanarsena/cliparse"
	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/metrics"
	"github.com/danielhkuo/vanarsena/router"
	"github.com/danielhkuo/vanarsena/seed"
	"github.com/danielhkuo/vanarsena/storage"
)

// setupLogger writes text logs to a terminal and JSON everywhere else
func setupLogger() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv("LOG_LEVEL") == "debug" {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	var err error

	setupLogger()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// First admin account
	if cfg.DefaultAdminUsername != "" && cfg.DefaultAdminPassword != "" {
		created, err := seed.BootstrapAdmin(ctx, dbConn, seed.Admin{
			Username: cfg.DefaultAdminUsername,
			Email:    cfg.DefaultAdminEmail,
			Password: cfg.DefaultAdminPassword,
		})
		if err != nil {
			slog.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
		if created {
			slog.Info("Default admin created", "username", cfg.DefaultAdminUsername)
		}
	}

	signer, err := auth.NewSessionSigner(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		slog.Error("session signer failed", "error", err)
		os.Exit(1)
	}

	// Session revocation and login lockout
	var revocations cache.RevocationStore = cache.NewMemoryRevocationStore()
	var lockouts cache.LockoutStore = cache.NewMemoryLockoutStore()
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		revocations = cache.NewRedisRevocationStore(client)
		lockouts = cache.NewRedisLockoutStore(client)
		slog.Info("Using Redis for sessions and lockouts")
	}

	// Media storage
	var store storage.MediaStore
	if cfg.MediaEnabled() {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Bucket:       cfg.S3Bucket,
			UsePathStyle: cfg.S3UsePathStyle,
			PublicURL:    cfg.MediaPublicURL,
		})
		if err != nil {
			slog.Error("object storage setup failed", "error", err)
			os.Exit(1)
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		err = s3Store.EnsureBucket(bucketCtx)
		cancel()
		if err != nil {
			slog.Error("bucket setup failed", "error", err, "bucket", cfg.S3Bucket)
			os.Exit(1)
		}
		store = s3Store
		slog.Info("Media storage ready", "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("S3 not configured, media uploads disabled")
	}

	// Create router
	handler, err := router.NewRouter(router.Deps{
		DB:          dbConn,
		Config:      cfg,
		Signer:      signer,
		Revocations: revocations,
		Lockouts:    lockouts,
		Store:       store,
		Metrics:     metrics.New(),
	})
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "site", strings.TrimSuffix(cfg.SiteURL, "/"))
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
