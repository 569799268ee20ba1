// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// CookieName stores the visitor's language preference
const CookieName = "language"

// ResolveLocale picks the locale for a request without a locale prefix:
// the language cookie, then Accept-Language (Hindi preferred over
// English wherever it appears), then the default.
func ResolveLocale(r *http.Request) Locale {
	if c, err := r.Cookie(CookieName); err == nil {
		if loc, ok := Parse(c.Value); ok {
			return loc
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			found := map[Locale]bool{}
			for _, tag := range tags {
				base, _ := tag.Base()
				if loc, ok := Parse(base.String()); ok {
					found[loc] = true
				}
			}
			for _, loc := range Supported {
				if found[loc] {
					return loc
				}
			}
		}
	}

	return Default
}

// SetLocaleCookie remembers the visitor's locale for a year
func SetLocaleCookie(w http.ResponseWriter, l Locale) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    l.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// SplitPath separates a leading locale segment from the rest of the path.
// "/en/events" yields (en, "/events", true); "/events" yields ("", "/events", false).
func SplitPath(path string) (Locale, string, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(trimmed, "/")
	for _, loc := range Supported {
		if first == loc.String() {
			return loc, "/" + rest, true
		}
	}
	return "", path, false
}

// LocalizedPath prefixes path with a locale
func LocalizedPath(l Locale, path string) string {
	if path == "" || path == "/" {
		return "/" + l.String()
	}
	return "/" + l.String() + path
}

// unlocalizedPrefixes never receive a locale prefix
var unlocalizedPrefixes = []string{"/admin", "/api/", "/static/", "/health", "/metrics", "/favicon"}

func needsLocale(path string) bool {
	for _, p := range unlocalizedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	// Files such as /robots.txt
	if strings.Contains(path, ".") {
		return false
	}
	_, _, ok := SplitPath(path)
	return !ok
}

// RedirectMiddleware sends public page requests without a locale prefix
// to /{locale}{path}, keeping the query string.
func RedirectMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !needsLocale(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		target := LocalizedPath(ResolveLocale(r), r.URL.Path)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
}
