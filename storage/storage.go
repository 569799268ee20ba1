// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/danielhkuo/vanarsena/models"
)

// ErrNotConfigured is returned by handlers when no media store is wired
var ErrNotConfigured = errors.New("media storage not configured")

// MediaStore writes and removes uploaded objects
type MediaStore interface {
	// Put stores body under key and returns its public URL
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var categoryPrefixes = map[string]string{
	models.MediaImage:    "images",
	models.MediaVideo:    "videos",
	models.MediaDocument: "documents",
}

// ObjectKey builds the bucket key of a new upload. ext is taken from the
// original filename and may be empty.
func ObjectKey(category, id, filename string) string {
	prefix, ok := categoryPrefixes[category]
	if !ok {
		prefix = categoryPrefixes[models.MediaDocument]
	}
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\ ") {
		ext = ""
	}
	return prefix + "/" + id + ext
}
