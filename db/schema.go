// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	return CreateSchemaContext(context.Background(), db)
}

// CreateSchemaContext creates the tables and then applies column migrations
func CreateSchemaContext(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.stmt); err != nil {
			return fmt.Errorf("migration %q failed: %w", m.name, err)
		}
	}
	return nil
}

// Tables lists every application table
var Tables = []string{
	"events",
	"event_translations",
	"media_files",
	"contact_submissions",
	"admin_users",
	"site_settings",
}

const schema = `
-- Events
CREATE TABLE IF NOT EXISTS events (
    id SERIAL PRIMARY KEY,
    slug VARCHAR(255) UNIQUE NOT NULL,
    event_date DATE NOT NULL,
    event_time TIME,
    location VARCHAR(255),
    tags TEXT[] NOT NULL DEFAULT '{}',
    media_urls TEXT[] NOT NULL DEFAULT '{}',
    video_urls TEXT[] NOT NULL DEFAULT '{}',
    document_urls TEXT[] NOT NULL DEFAULT '{}',
    visibility VARCHAR(20) NOT NULL DEFAULT 'draft' CHECK (visibility IN ('draft', 'published')),
    featured_image VARCHAR(500),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_events_visibility_date ON events(visibility, event_date);

-- One row per event and locale
CREATE TABLE IF NOT EXISTS event_translations (
    id SERIAL PRIMARY KEY,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    locale VARCHAR(5) NOT NULL CHECK (locale IN ('hi', 'en')),
    title VARCHAR(255) NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (event_id, locale)
);

CREATE INDEX IF NOT EXISTS idx_event_translations_event_id ON event_translations(event_id);

-- Uploaded media
CREATE TABLE IF NOT EXISTS media_files (
    id VARCHAR(64) PRIMARY KEY,
    filename VARCHAR(255) NOT NULL,
    original_name VARCHAR(255) NOT NULL,
    file_type VARCHAR(100) NOT NULL,
    file_size BIGINT NOT NULL,
    url VARCHAR(1000) NOT NULL,
    bucket VARCHAR(100) NOT NULL,
    uploaded_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_media_files_uploaded_at ON media_files(uploaded_at);

-- Contact form submissions
CREATE TABLE IF NOT EXISTS contact_submissions (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    phone VARCHAR(50),
    subject VARCHAR(255) NOT NULL,
    message TEXT NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'unread' CHECK (status IN ('unread', 'read', 'replied')),
    submitted_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_contact_submissions_status ON contact_submissions(status);

-- Admin accounts
CREATE TABLE IF NOT EXISTS admin_users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(100) UNIQUE NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(50) NOT NULL DEFAULT 'admin',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    last_login TIMESTAMP
);

-- Key/value site settings
CREATE TABLE IF NOT EXISTS site_settings (
    id SERIAL PRIMARY KEY,
    setting_key VARCHAR(100) UNIQUE NOT NULL,
    setting_value TEXT,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

// migrations add columns introduced after the first release.
// Each statement must be idempotent.
var migrations = []struct {
	name string
	stmt string
}{
	{"event_translations seo fields", `
		ALTER TABLE event_translations ADD COLUMN IF NOT EXISTS meta_title VARCHAR(255);
		ALTER TABLE event_translations ADD COLUMN IF NOT EXISTS meta_description TEXT;
		ALTER TABLE event_translations ADD COLUMN IF NOT EXISTS updated_at TIMESTAMP NOT NULL DEFAULT NOW();
	`},
	{"media_files object key", `
		ALTER TABLE media_files ADD COLUMN IF NOT EXISTS object_key VARCHAR(500) NOT NULL DEFAULT '';
	`},
	{"contact_submissions volunteer and locale", `
		ALTER TABLE contact_submissions ADD COLUMN IF NOT EXISTS volunteer_interest BOOLEAN NOT NULL DEFAULT FALSE;
		ALTER TABLE contact_submissions ADD COLUMN IF NOT EXISTS locale VARCHAR(5) NOT NULL DEFAULT 'hi';
	`},
}
