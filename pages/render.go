// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/vanarsena/i18n"
	"github.com/danielhkuo/vanarsena/models"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static serves the embedded /static/ assets
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

var sitePages = []string{"home", "about", "events", "event", "contact", "notfound"}

var adminPages = []string{"login", "dashboard", "events", "event_form", "media", "contacts", "settings"}

// renderer holds one parsed template set per page, each combined with
// its layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(now func() time.Time) (*renderer, error) {
	funcs := templateFuncs(now)
	r := &renderer{pages: make(map[string]*template.Template)}

	for _, name := range sitePages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	for _, name := range adminPages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/admin/layout.html", "templates/admin/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse admin page %s: %w", name, err)
		}
		r.pages["admin/"+name] = t
	}
	return r, nil
}

// render executes page into a buffer so a template error still yields
// a clean 500.
func (r *renderer) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := r.pages[page]
	if !ok {
		slog.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	layout := "layout"
	if strings.HasPrefix(page, "admin/") {
		layout = "admin"
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, data); err != nil {
		slog.Error("failed to render page", "error", err, "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func templateFuncs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"t": func(loc i18n.Locale, key string, args ...any) string {
			return i18n.T(loc, key, args...)
		},
		"date": i18n.FormatDate,
		"time": i18n.FormatTime,
		"path": i18n.LocalizedPath,
		// Event descriptions are admin-authored HTML
		"html": func(s string) template.HTML {
			return template.HTML(s)
		},
		"join": strings.Join,
		"list": func(items ...string) []string { return items },
		"upcoming": func(date string) bool {
			return date >= now().Format(time.DateOnly)
		},
		"size":   formatSize,
		"stamp":  func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"card": func(loc i18n.Locale, e models.Event) eventCard {
			return eventCard{Locale: loc, Event: e}
		},
	}
}

func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// eventCard is the argument of the event-card template
type eventCard struct {
	Locale i18n.Locale
	Event  models.Event
}
