// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pages

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/cache"
	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/models"
	"github.com/danielhkuo/vanarsena/seo"
)

// ContactAcceptor stores a contact form submitted in a locale
type ContactAcceptor interface {
	Accept(ctx context.Context, req models.ContactRequest, loc i18n.Locale) (int64, error)
}

// Config wires the page handlers to their backing services
type Config struct {
	DB           *sql.DB
	SiteURL      string
	Contacts     ContactAcceptor
	Signer       *auth.SessionSigner
	Revocations  cache.RevocationStore
	MediaEnabled bool
	MaxUpload    int64
}

// Pages renders the public site and the admin panel
type Pages struct {
	db           *sql.DB
	site         seo.Site
	contacts     ContactAcceptor
	signer       *auth.SessionSigner
	revocations  cache.RevocationStore
	mediaEnabled bool
	maxUpload    int64
	views        *renderer
	now          func() time.Time
}

func New(cfg Config) (*Pages, error) {
	p := &Pages{
		db:           cfg.DB,
		site:         seo.Site{BaseURL: cfg.SiteURL},
		contacts:     cfg.Contacts,
		signer:       cfg.Signer,
		revocations:  cfg.Revocations,
		mediaEnabled: cfg.MediaEnabled,
		maxUpload:    cfg.MaxUpload,
		now:          time.Now,
	}
	views, err := newRenderer(func() time.Time { return p.now() })
	if err != nil {
		return nil, err
	}
	p.views = views
	return p, nil
}

// page is the data every public template receives
type page struct {
	Locale    i18n.Locale
	Alternate i18n.Locale
	// Path is the current path without its locale prefix
	Path     string
	Meta     seo.Meta
	Settings models.SiteSettings
	Year     int

	site seo.Site
}

func (p *Pages) newPage(r *http.Request, loc i18n.Locale, path string) page {
	settings := p.settings(r.Context())
	return page{
		Locale:    loc,
		Alternate: loc.Alternate(),
		Path:      path,
		Settings:  settings,
		Year:      p.now().Year(),
		site:      seo.Site{BaseURL: p.site.BaseURL, Name: settings.SiteName(loc.String())},
	}
}

// settings loads the site settings, falling back to the defaults when
// the database is unavailable so pages still render.
func (p *Pages) settings(ctx context.Context) models.SiteSettings {
	stored, err := db.GetSettings(ctx, p.db)
	if err != nil {
		slog.Error("failed to load settings for page", "error", err)
		return models.DefaultSettings()
	}
	return models.SettingsFromMap(stored)
}

// locale reads the {locale} path segment and remembers it in the
// language cookie. Unsupported locales render the 404 page.
func (p *Pages) locale(w http.ResponseWriter, r *http.Request) (i18n.Locale, bool) {
	loc, ok := i18n.Parse(r.PathValue("locale"))
	if !ok {
		p.NotFound(w, r)
		return "", false
	}
	i18n.SetLocaleCookie(w, loc)
	return loc, true
}

// NotFound renders the localized 404 page
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	loc, ok := i18n.Parse(r.PathValue("locale"))
	if !ok {
		if loc, _, ok = i18n.SplitPath(r.URL.Path); !ok {
			loc = i18n.ResolveLocale(r)
		}
	}
	data := p.newPage(r, loc, "/")
	data.Meta = seo.PageMeta(data.site, loc, "/", i18n.T(loc, "notfound.title"), i18n.T(loc, "notfound.body")).NoIndex()
	p.views.render(w, http.StatusNotFound, "notfound", data)
}

func (p *Pages) serverError(w http.ResponseWriter, r *http.Request, loc i18n.Locale, err error) {
	slog.Error("failed to render page", "error", err, "path", r.URL.Path)
	http.Error(w, i18n.T(loc, "error.server"), http.StatusInternalServerError)
}

func (p *Pages) logError(r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "path", r.URL.Path)
}

// parseID reads a positive integer {id} path value
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
