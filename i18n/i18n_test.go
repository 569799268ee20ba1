// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
		ok   bool
	}{
		{"hi", Hindi, true},
		{"en", English, true},
		{"EN", English, true},
		{"en-US", English, true},
		{"hi-IN", Hindi, true},
		{"fr", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	if OrDefault("de") != Hindi {
		t.Error("Expected default locale for unsupported input")
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	hi := Keys(Hindi)
	en := Keys(English)
	if len(hi) == 0 {
		t.Fatal("Expected Hindi catalog to be loaded")
	}
	if strings.Join(hi, ",") != strings.Join(en, ",") {
		for _, k := range hi {
			if !Has(English, k) {
				t.Errorf("English catalog missing %q", k)
			}
		}
		for _, k := range en {
			if !Has(Hindi, k) {
				t.Errorf("Hindi catalog missing %q", k)
			}
		}
	}
}

func TestT(t *testing.T) {
	if got := T(Hindi, "site.title"); got != "VanarSena - वानरसेना" {
		t.Errorf("Unexpected Hindi title %q", got)
	}
	if got := T(English, "site.title"); got != "VanarSena - Social Service NGO" {
		t.Errorf("Unexpected English title %q", got)
	}
	if got := T(English, "events.joinUs", "Health Camp", "January 10, 2030"); got != "Join us for Health Camp on January 10, 2030" {
		t.Errorf("Unexpected formatted message %q", got)
	}
	if got := T(English, "no.such.key"); got != "no.such.key" {
		t.Errorf("Missing keys should echo the key, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		loc  Locale
		in   string
		want string
	}{
		{Hindi, "2025-08-15", "15 अगस्त 2025"},
		{English, "2025-08-15", "August 15, 2025"},
		{English, "2030-01-02", "January 2, 2030"},
		{Hindi, "not-a-date", "not-a-date"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.loc, tt.in); got != tt.want {
			t.Errorf("FormatDate(%s, %q) = %q, want %q", tt.loc, tt.in, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(English, "18:30"); got != "6:30 PM" {
		t.Errorf("Unexpected English time %q", got)
	}
	if got := FormatTime(Hindi, "18:30"); got != "18:30" {
		t.Errorf("Unexpected Hindi time %q", got)
	}
	if got := FormatTime(English, ""); got != "" {
		t.Errorf("Expected empty time to stay empty, got %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		accept string
		want   Locale
	}{
		{"default", "", "", Hindi},
		{"cookie wins", "en", "hi-IN,hi;q=0.9", English},
		{"invalid cookie falls through", "fr", "en-US,en;q=0.9", English},
		{"hindi preferred when present", "", "en-US,en;q=0.9,hi;q=0.5", Hindi},
		{"english only", "", "en-GB", English},
		{"unsupported", "", "fr-FR,de;q=0.8", Hindi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/events", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			if got := ResolveLocale(req); got != tt.want {
				t.Errorf("ResolveLocale() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		loc  Locale
		rest string
		ok   bool
	}{
		{"/en/events", English, "/events", true},
		{"/hi", Hindi, "/", true},
		{"/events", "", "/events", false},
		{"/english", "", "/english", false},
	}
	for _, tt := range tests {
		loc, rest, ok := SplitPath(tt.path)
		if loc != tt.loc || rest != tt.rest || ok != tt.ok {
			t.Errorf("SplitPath(%q) = %q, %q, %v", tt.path, loc, rest, ok)
		}
	}
}

func TestRedirectMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RedirectMiddleware(next)

	tests := []struct {
		name     string
		path     string
		cookie   string
		accept   string
		wantCode int
		wantLoc  string
	}{
		{"root defaults to hindi", "/", "", "", http.StatusTemporaryRedirect, "/hi"},
		{"events with english browser", "/events", "", "en-US", http.StatusTemporaryRedirect, "/en/events"},
		{"query preserved", "/events?category=health", "en", "", http.StatusTemporaryRedirect, "/en/events?category=health"},
		{"already localized", "/en/about", "", "", http.StatusOK, ""},
		{"admin untouched", "/admin/dashboard", "", "", http.StatusOK, ""},
		{"api untouched", "/api/events", "", "", http.StatusOK, ""},
		{"static untouched", "/static/admin.js", "", "", http.StatusOK, ""},
		{"files untouched", "/robots.txt", "", "", http.StatusOK, ""},
		{"health untouched", "/health", "", "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("Expected status %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantLoc != "" && w.Header().Get("Location") != tt.wantLoc {
				t.Errorf("Expected Location %q, got %q", tt.wantLoc, w.Header().Get("Location"))
			}
		})
	}
}

func TestSetLocaleCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetLocaleCookie(w, English)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != "en" {
		t.Errorf("Unexpected cookies %+v", cookies)
	}
}
