// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cache"
	"github.com/danielhkuo/vanarsena/cliparse"
	"github.com/danielhkuo/vanarsena/handlers"
	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/metrics"
	"github.com/danielhkuo/vanarsena/middleware"
	"github.com/danielhkuo/vanarsena/pages"
	"github.com/danielhkuo/vanarsena/storage"
)

// Deps are the services shared by every route. Store may be nil when
// object storage is not configured.
type Deps struct {
	DB          *sql.DB
	Config      cliparse.Config
	Signer      *auth.SessionSigner
	Revocations cache.RevocationStore
	Lockouts    cache.LockoutStore
	Store       storage.MediaStore
	Metrics     *metrics.Metrics
}

// NewRouter returns the full handler: the route mux wrapped in panic
// recovery, request ids, metrics, CORS and the locale redirect.
func NewRouter(deps Deps) (http.Handler, error) {
	mux, err := NewMux(deps)
	if err != nil {
		return nil, err
	}

	var h http.Handler = mux
	h = i18n.RedirectMiddleware(h)
	h = middleware.CORS(deps.Config.CORSOrigins())(h)
	h = middleware.WithMetrics(deps.Metrics)(h)
	h = middleware.RequestID(h)
	h = middleware.Recover(h)
	return h, nil
}

func NewMux(deps Deps) (*http.ServeMux, error) {
	mux := http.NewServeMux()
	cfg := deps.Config

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(deps.DB)
	adminEventHandler := handlers.NewAdminEventHandler(deps.DB)
	contactHandler := handlers.NewContactHandler(deps.DB, deps.Metrics)
	mediaHandler := handlers.NewMediaHandler(deps.DB, deps.Store, cfg, deps.Metrics)
	authHandler := handlers.NewAuthHandler(deps.DB, cfg, deps.Signer, deps.Revocations, deps.Lockouts, deps.Metrics)
	settingsHandler := handlers.NewSettingsHandler(deps.DB)
	dashboardHandler := handlers.NewDashboardHandler(deps.DB)
	seedHandler := handlers.NewSeedHandler(deps.DB)

	site, err := pages.New(pages.Config{
		DB:           deps.DB,
		SiteURL:      cfg.SiteURL,
		Contacts:     contactHandler,
		Signer:       deps.Signer,
		Revocations:  deps.Revocations,
		MediaEnabled: deps.Store != nil,
		MaxUpload:    cfg.MaxUploadBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}

	requireAdmin := middleware.RequireAdmin(deps.Signer, deps.Revocations)
	log := middleware.WithLogging
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return log(requireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", deps.Metrics.Handler())
	mux.Handle("GET /static/", pages.Static())

	// Public API
	mux.HandleFunc("GET /api/events", log(eventHandler.List))
	mux.HandleFunc("GET /api/events/{slug}", log(eventHandler.GetBySlug))
	mux.HandleFunc("POST /api/contact", log(contactHandler.Submit))

	// Admin session
	mux.HandleFunc("POST /api/admin/login", log(authHandler.Login))
	mux.HandleFunc("POST /api/admin/logout", log(authHandler.Logout))
	mux.HandleFunc("GET /api/admin/session", admin(authHandler.Session))

	// Admin API
	mux.HandleFunc("GET /api/admin/dashboard", admin(dashboardHandler.Stats))

	mux.HandleFunc("GET /api/admin/events", admin(adminEventHandler.List))
	mux.HandleFunc("POST /api/admin/events", admin(adminEventHandler.Create))
	mux.HandleFunc("GET /api/admin/events/{id}", admin(adminEventHandler.Get))
	mux.HandleFunc("PUT /api/admin/events/{id}", admin(adminEventHandler.Update))
	mux.HandleFunc("DELETE /api/admin/events/{id}", admin(adminEventHandler.Delete))
	mux.HandleFunc("PATCH /api/admin/events/{id}/publish", admin(adminEventHandler.Publish))

	mux.HandleFunc("GET /api/admin/media", admin(mediaHandler.List))
	mux.HandleFunc("POST /api/admin/media/upload", admin(mediaHandler.Upload))
	mux.HandleFunc("DELETE /api/admin/media/{id}", admin(mediaHandler.Delete))

	mux.HandleFunc("GET /api/admin/contacts", admin(contactHandler.List))
	mux.HandleFunc("GET /api/admin/contacts/{id}", admin(contactHandler.Get))
	mux.HandleFunc("PATCH /api/admin/contacts/{id}", admin(contactHandler.UpdateStatus))
	mux.HandleFunc("DELETE /api/admin/contacts/{id}", admin(contactHandler.Delete))

	mux.HandleFunc("GET /api/admin/settings", admin(settingsHandler.Get))
	mux.HandleFunc("PUT /api/admin/settings", admin(settingsHandler.Update))

	mux.HandleFunc("POST /api/admin/seed", admin(seedHandler.Seed))

	// Admin pages
	mux.HandleFunc("GET /admin/login", log(site.Login))
	mux.HandleFunc("GET /admin", admin(site.AdminHome))
	mux.HandleFunc("GET /admin/{$}", admin(site.AdminHome))
	mux.HandleFunc("GET /admin/dashboard", admin(site.Dashboard))
	mux.HandleFunc("GET /admin/events", admin(site.AdminEvents))
	mux.HandleFunc("GET /admin/events/new", admin(site.NewEvent))
	mux.HandleFunc("GET /admin/events/{id}/edit", admin(site.EditEvent))
	mux.HandleFunc("GET /admin/media", admin(site.Media))
	mux.HandleFunc("GET /admin/contacts", admin(site.Contacts))
	mux.HandleFunc("GET /admin/settings", admin(site.Settings))

	// Public pages, registered once per locale. A {locale} wildcard
	// would overlap /static/ and /admin/.
	for _, loc := range i18n.Supported {
		prefix := "/" + loc.String()
		page := func(h http.HandlerFunc) http.HandlerFunc {
			return log(withLocale(loc, h))
		}
		mux.HandleFunc("GET "+prefix, page(site.Home))
		mux.HandleFunc("GET "+prefix+"/{$}", page(site.Home))
		mux.HandleFunc("GET "+prefix+"/about", page(site.About))
		mux.HandleFunc("GET "+prefix+"/events", page(site.Events))
		mux.HandleFunc("GET "+prefix+"/events/{slug}", page(site.Event))
		mux.HandleFunc("GET "+prefix+"/contact", page(site.Contact))
		mux.HandleFunc("POST "+prefix+"/contact", page(site.SubmitContact))
	}

	// Everything else, including unknown locales
	mux.HandleFunc("GET /", log(site.NotFound))

	return mux, nil
}

// withLocale exposes the route's locale as the {locale} path value
func withLocale(loc i18n.Locale, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.SetPathValue("locale", loc.String())
		next(w, r)
	}
}
