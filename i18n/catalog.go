// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// catalogs holds the raw messages per locale, used for key listings
var catalogs = mustLoadCatalogs()

func mustLoadCatalogs() map[Locale]map[string]string {
	c, err := loadCatalogs(localeFS)
	if err != nil {
		panic(err)
	}
	for loc, messages := range c {
		for key, value := range messages {
			if err := message.SetString(loc.Tag(), key, value); err != nil {
				panic(fmt.Errorf("register %s/%s: %w", loc, key, err))
			}
		}
	}
	return c
}

func loadCatalogs(fsys fs.FS) (map[Locale]map[string]string, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}

	out := make(map[Locale]map[string]string)
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		loc, ok := Parse(file.Locale)
		if !ok {
			return nil, fmt.Errorf("catalog %s: unsupported locale %q", path, file.Locale)
		}
		if _, dup := out[loc]; dup {
			return nil, fmt.Errorf("catalog %s: locale %s defined twice", path, loc)
		}
		out[loc] = file.Messages
	}

	for _, loc := range Supported {
		if _, ok := out[loc]; !ok {
			return nil, fmt.Errorf("missing catalog for locale %s", loc)
		}
	}
	return out, nil
}

// Keys returns the sorted message keys of a locale
func Keys(loc Locale) []string {
	keys := make([]string, 0, len(catalogs[loc]))
	for k := range catalogs[loc] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether a locale defines key
func Has(loc Locale, key string) bool {
	_, ok := catalogs[loc][key]
	return ok
}
