// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"net/url"
	"strings"
)

// SocialMedia links shown in the footer and contact page
type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Youtube   string `json:"youtube"`
}

// SiteSettings is the editable site configuration. It is stored as
// key/value rows in site_settings using the JSON field names as keys.
type SiteSettings struct {
	SiteNameHi        string      `json:"siteName_hi"`
	SiteNameEn        string      `json:"siteName_en"`
	SiteDescriptionHi string      `json:"siteDescription_hi"`
	SiteDescriptionEn string      `json:"siteDescription_en"`
	ContactEmail      string      `json:"contactEmail"`
	ContactPhone      string      `json:"contactPhone"`
	AddressHi         string      `json:"address_hi"`
	AddressEn         string      `json:"address_en"`
	SocialMedia       SocialMedia `json:"socialMedia"`
}

// DefaultSettings are used until an admin saves the settings page
func DefaultSettings() SiteSettings {
	return SiteSettings{
		SiteNameHi:        "वानरसेना",
		SiteNameEn:        "VanarSena",
		SiteDescriptionHi: "समाज सेवा के लिए समर्पित एक गैर-लाभकारी संगठन",
		SiteDescriptionEn: "A non-profit organization dedicated to social service",
		ContactEmail:      "info@vanarsena.org",
		ContactPhone:      "+91 98765 43210",
		AddressHi:         "नई दिल्ली, भारत",
		AddressEn:         "New Delhi, India",
	}
}

// SettingsFromMap overlays stored key/value rows onto the defaults
func SettingsFromMap(m map[string]string) SiteSettings {
	s := DefaultSettings()
	for key, field := range s.fields() {
		if v, ok := m[key]; ok && v != "" {
			*field = v
		}
	}
	return s
}

// ToMap flattens the settings into their stored key/value form
func (s SiteSettings) ToMap() map[string]string {
	m := make(map[string]string)
	for key, field := range s.fields() {
		m[key] = *field
	}
	return m
}

func (s *SiteSettings) fields() map[string]*string {
	return map[string]*string{
		"siteName_hi":           &s.SiteNameHi,
		"siteName_en":           &s.SiteNameEn,
		"siteDescription_hi":    &s.SiteDescriptionHi,
		"siteDescription_en":    &s.SiteDescriptionEn,
		"contactEmail":          &s.ContactEmail,
		"contactPhone":          &s.ContactPhone,
		"address_hi":            &s.AddressHi,
		"address_en":            &s.AddressEn,
		"socialMedia.facebook":  &s.SocialMedia.Facebook,
		"socialMedia.twitter":   &s.SocialMedia.Twitter,
		"socialMedia.instagram": &s.SocialMedia.Instagram,
		"socialMedia.youtube":   &s.SocialMedia.Youtube,
	}
}

// SiteName returns the site name for a locale
func (s SiteSettings) SiteName(locale string) string {
	if locale == "en" {
		return s.SiteNameEn
	}
	return s.SiteNameHi
}

func (s SiteSettings) SiteDescription(locale string) string {
	if locale == "en" {
		return s.SiteDescriptionEn
	}
	return s.SiteDescriptionHi
}

func (s SiteSettings) Address(locale string) string {
	if locale == "en" {
		return s.AddressEn
	}
	return s.AddressHi
}

// Validate requires every text field and well-formed social URLs
func (s SiteSettings) Validate() error {
	required := []struct{ name, value string }{
		{"siteName_hi", s.SiteNameHi},
		{"siteName_en", s.SiteNameEn},
		{"siteDescription_hi", s.SiteDescriptionHi},
		{"siteDescription_en", s.SiteDescriptionEn},
		{"contactEmail", s.ContactEmail},
		{"contactPhone", s.ContactPhone},
		{"address_hi", s.AddressHi},
		{"address_en", s.AddressEn},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &FieldError{Field: f.name, Key: "validation.required"}
		}
	}
	if !IsValidEmail(s.ContactEmail) {
		return &FieldError{Field: "contactEmail", Key: "validation.email"}
	}

	social := []struct{ name, value string }{
		{"socialMedia.facebook", s.SocialMedia.Facebook},
		{"socialMedia.twitter", s.SocialMedia.Twitter},
		{"socialMedia.instagram", s.SocialMedia.Instagram},
		{"socialMedia.youtube", s.SocialMedia.Youtube},
	}
	for _, f := range social {
		if f.value == "" {
			continue
		}
		u, err := url.Parse(f.value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &FieldError{Field: f.name, Key: "validation.url"}
		}
	}
	return nil
}
