// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is a supported site language
type Locale string

const (
	Hindi   Locale = "hi"
	English Locale = "en"

	Default = Hindi
)

// Supported lists the site locales, default first
var Supported = []Locale{Hindi, English}

// Parse accepts a locale code, ignoring case and region ("en-US" is en)
func Parse(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if base, _, found := strings.Cut(s, "-"); found {
		s = base
	}
	switch Locale(s) {
	case Hindi:
		return Hindi, true
	case English:
		return English, true
	}
	return "", false
}

// OrDefault returns the parsed locale or the default
func OrDefault(s string) Locale {
	if loc, ok := Parse(s); ok {
		return loc
	}
	return Default
}

func (l Locale) String() string {
	return string(l)
}

func (l Locale) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Hindi
}

// Alternate returns the other site locale, used by the language switcher
func (l Locale) Alternate() Locale {
	if l == English {
		return Hindi
	}
	return English
}

// OpenGraph returns the og:locale value
func (l Locale) OpenGraph() string {
	if l == English {
		return "en_US"
	}
	return "hi_IN"
}

// Printer returns a message printer for the locale
func Printer(l Locale) *message.Printer {
	return message.NewPrinter(l.Tag())
}

// T translates key. Arguments fill %s verbs in the message; pass
// preformatted strings since the printer localizes numbers.
func T(l Locale, key string, args ...any) string {
	return Printer(l).Sprintf(key, args...)
}

// FormatDate renders a YYYY-MM-DD date as "15 अगस्त 2025" or "August 15, 2025".
// Unparseable input is returned unchanged.
func FormatDate(l Locale, date string) string {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	month := T(l, fmt.Sprintf("month.%d", int(d.Month())))
	if l == English {
		return fmt.Sprintf("%s %d, %d", month, d.Day(), d.Year())
	}
	return fmt.Sprintf("%d %s %d", d.Day(), month, d.Year())
}

// FormatTime renders HH:MM as 12-hour time for English and 24-hour for Hindi
func FormatTime(l Locale, hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	if l == English {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}
