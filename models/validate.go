// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// FieldError reports an invalid request field. Key names the localized
// message shown to visitors.
type FieldError struct {
	Field string
	Key   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Key)
}

// IsValidEmail matches the loose address check used by the contact form
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify lowercases s and joins its ASCII letters and digits with hyphens.
// Devanagari text yields an empty slug.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	return slug
}

// Normalize trims the input and fills derived fields: the slug from the
// English title and each meta title from its title.
func (in *EventInput) Normalize() {
	in.Slug = strings.TrimSpace(strings.ToLower(in.Slug))
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.EventTime = strings.TrimSpace(in.EventTime)
	in.Location = strings.TrimSpace(in.Location)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
	in.TitleHi = strings.TrimSpace(in.TitleHi)
	in.TitleEn = strings.TrimSpace(in.TitleEn)

	if in.Slug == "" {
		in.Slug = Slugify(in.TitleEn)
	}
	if in.MetaTitleHi == "" {
		in.MetaTitleHi = in.TitleHi
	}
	if in.MetaTitleEn == "" {
		in.MetaTitleEn = in.TitleEn
	}

	in.Tags = cleanList(in.Tags)
	in.MediaURLs = cleanList(in.MediaURLs)
	in.VideoURLs = cleanList(in.VideoURLs)
	in.DocumentURLs = cleanList(in.DocumentURLs)

	// Accept HH:MM:SS from clients that echo the stored value back
	if len(in.EventTime) == len("15:04:05") {
		in.EventTime = in.EventTime[:5]
	}
}

// Validate checks a normalized EventInput. Both translations are required
// so an event is never visible in one locale only.
func (in EventInput) Validate() error {
	if in.TitleHi == "" {
		return &FieldError{Field: "title_hi", Key: "validation.required"}
	}
	if in.TitleEn == "" {
		return &FieldError{Field: "title_en", Key: "validation.required"}
	}
	if in.Slug == "" || !IsValidSlug(in.Slug) {
		return &FieldError{Field: "slug", Key: "validation.slug"}
	}
	if in.EventDate == "" {
		return &FieldError{Field: "event_date", Key: "validation.required"}
	}
	if _, err := time.Parse(time.DateOnly, in.EventDate); err != nil {
		return &FieldError{Field: "event_date", Key: "validation.date"}
	}
	if in.EventTime != "" {
		if _, err := time.Parse("15:04", in.EventTime); err != nil {
			return &FieldError{Field: "event_time", Key: "validation.time"}
		}
	}
	return nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Normalize trims all text fields
func (c *ContactRequest) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
}

func (c ContactRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", c.Name},
		{"email", c.Email},
		{"subject", c.Subject},
		{"message", c.Message},
	} {
		if f.value == "" {
			return &FieldError{Field: f.name, Key: "contact.error.required"}
		}
	}
	if !IsValidEmail(c.Email) {
		return &FieldError{Field: "email", Key: "contact.error.email"}
	}
	return nil
}

func IsValidContactStatus(status string) bool {
	switch status {
	case ContactUnread, ContactRead, ContactReplied:
		return true
	}
	return false
}

// allowedMediaTypes lists accepted upload MIME types
var allowedMediaTypes = map[string]string{
	"image/jpeg":      MediaImage,
	"image/jpg":       MediaImage,
	"image/png":       MediaImage,
	"image/gif":       MediaImage,
	"image/webp":      MediaImage,
	"video/mp4":       MediaVideo,
	"video/webm":      MediaVideo,
	"video/avi":       MediaVideo,
	"application/pdf": MediaDocument,
	"text/plain":      MediaDocument,
}

func IsAllowedMediaType(contentType string) bool {
	_, ok := allowedMediaTypes[normalizeMIME(contentType)]
	return ok
}

// MediaCategory maps a MIME type to image, video or document
func MediaCategory(contentType string) string {
	ct := normalizeMIME(contentType)
	if c, ok := allowedMediaTypes[ct]; ok {
		return c
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
		return MediaImage
	case strings.HasPrefix(ct, "video/"):
		return MediaVideo
	}
	return MediaDocument
}

func normalizeMIME(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}
