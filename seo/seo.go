// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seo

import (
	"strings"

	"github.com/danielhkuo/vanarsena/i18n"
)

// Description lengths used for meta tags and structured data
const (
	MetaDescriptionLen       = 160
	StructuredDescriptionLen = 200
)

// Site identifies the public origin and organization name
type Site struct {
	BaseURL string
	Name    string
}

// URL joins the site origin with an absolute path
func (s Site) URL(path string) string {
	base := strings.TrimRight(s.BaseURL, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// AbsoluteURL returns ref unchanged when it already has a scheme and
// resolves it against the site otherwise
func (s Site) AbsoluteURL(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return s.URL(ref)
}

// Alternate is one hreflang link
type Alternate struct {
	Hreflang string
	Href     string
}

// Meta holds everything rendered into a page <head>
type Meta struct {
	Title          string
	Description    string
	Canonical      string
	Alternates     []Alternate
	SiteName       string
	Locale         string
	OGType         string
	Image          string
	ImageAlt       string
	Tags           []string
	PublishedTime  string
	ModifiedTime   string
	TwitterCard    string
	Robots         string
	Other          []Property
	StructuredData any
}

// Property is an extra <meta property=... content=...> pair
type Property struct {
	Property string
	Content  string
}

// Alternates lists the page path in every locale plus x-default
func Alternates(site Site, path string) []Alternate {
	out := make([]Alternate, 0, len(i18n.Supported)+1)
	for _, loc := range i18n.Supported {
		out = append(out, Alternate{
			Hreflang: loc.String(),
			Href:     site.URL(i18n.LocalizedPath(loc, path)),
		})
	}
	out = append(out, Alternate{
		Hreflang: "x-default",
		Href:     site.URL(i18n.LocalizedPath(i18n.Default, path)),
	})
	return out
}

// PageMeta builds metadata for a static page at path (without locale)
func PageMeta(site Site, loc i18n.Locale, path, title, description string) Meta {
	return Meta{
		Title:       title,
		Description: Truncate(description, MetaDescriptionLen),
		Canonical:   site.URL(i18n.LocalizedPath(loc, path)),
		Alternates:  Alternates(site, path),
		SiteName:    site.Name,
		Locale:      loc.OpenGraph(),
		OGType:      "website",
		TwitterCard: "summary",
		Robots:      "index, follow",
	}
}

// NoIndex returns a copy of m that search engines should skip
func (m Meta) NoIndex() Meta {
	m.Robots = "noindex, nofollow"
	return m
}
