// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed loads demo content into an empty database. Events, media,
// contacts and settings are each skipped when their table already has
// rows, so Run is safe to repeat.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/models"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// seedBucket marks media rows that point at external URLs
const seedBucket = "seed"

// Fixtures is the parsed content of fixtures.yaml
type Fixtures struct {
	Events   []EventFixture   `yaml:"events"`
	Media    []MediaFixture   `yaml:"media"`
	Contacts []ContactFixture `yaml:"contacts"`
}

type EventFixture struct {
	Slug              string   `yaml:"slug"`
	EventDate         string   `yaml:"event_date"`
	EventTime         string   `yaml:"event_time"`
	Location          string   `yaml:"location"`
	Tags              []string `yaml:"tags"`
	FeaturedImage     string   `yaml:"featured_image"`
	Published         bool     `yaml:"published"`
	TitleHi           string   `yaml:"title_hi"`
	TitleEn           string   `yaml:"title_en"`
	DescriptionHi     string   `yaml:"description_hi"`
	DescriptionEn     string   `yaml:"description_en"`
	MetaTitleHi       string   `yaml:"meta_title_hi"`
	MetaTitleEn       string   `yaml:"meta_title_en"`
	MetaDescriptionHi string   `yaml:"meta_description_hi"`
	MetaDescriptionEn string   `yaml:"meta_description_en"`
}

// Input converts the fixture into a normalized create request
func (e EventFixture) Input() models.EventInput {
	in := models.EventInput{
		Slug:              e.Slug,
		EventDate:         e.EventDate,
		EventTime:         e.EventTime,
		Location:          e.Location,
		Tags:              e.Tags,
		FeaturedImage:     e.FeaturedImage,
		Published:         e.Published,
		TitleHi:           e.TitleHi,
		TitleEn:           e.TitleEn,
		DescriptionHi:     e.DescriptionHi,
		DescriptionEn:     e.DescriptionEn,
		MetaTitleHi:       e.MetaTitleHi,
		MetaTitleEn:       e.MetaTitleEn,
		MetaDescriptionHi: e.MetaDescriptionHi,
		MetaDescriptionEn: e.MetaDescriptionEn,
	}
	in.Normalize()
	return in
}

type MediaFixture struct {
	Filename     string `yaml:"filename"`
	OriginalName string `yaml:"original_name"`
	FileType     string `yaml:"file_type"`
	FileSize     int64  `yaml:"file_size"`
	URL          string `yaml:"url"`
}

type ContactFixture struct {
	Name              string `yaml:"name"`
	Email             string `yaml:"email"`
	Phone             string `yaml:"phone"`
	Subject           string `yaml:"subject"`
	Message           string `yaml:"message"`
	VolunteerInterest bool   `yaml:"volunteer_interest"`
	Locale            string `yaml:"locale"`
	Status            string `yaml:"status"`
}

// Result counts the rows inserted per section
type Result struct {
	Events   int
	Media    int
	Contacts int
	Settings int
}

// Load parses the embedded fixtures
func Load() (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return Fixtures{}, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return f, nil
}

// Run loads the embedded fixtures into conn
func Run(ctx context.Context, conn *sql.DB) (Result, error) {
	f, err := Load()
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, conn, f)
}

// Apply inserts f section by section, skipping non-empty tables
func Apply(ctx context.Context, conn *sql.DB, f Fixtures) (Result, error) {
	var res Result
	var err error

	if res.Events, err = seedEvents(ctx, conn, f.Events); err != nil {
		return res, err
	}
	if res.Media, err = seedMedia(ctx, conn, f.Media); err != nil {
		return res, err
	}
	if res.Contacts, err = seedContacts(ctx, conn, f.Contacts); err != nil {
		return res, err
	}
	if res.Settings, err = seedSettings(ctx, conn); err != nil {
		return res, err
	}

	slog.Info("seed complete",
		"events", res.Events,
		"media", res.Media,
		"contacts", res.Contacts,
		"settings", res.Settings,
	)
	return res, nil
}

// tableEmpty reports whether table has no rows
func tableEmpty(ctx context.Context, conn *sql.DB, table string) (bool, error) {
	n, err := db.CountRows(ctx, conn, table)
	if err != nil {
		return false, err
	}
	if n > 0 {
		slog.Info("seed skipped, table not empty", "table", table, "rows", n)
	}
	return n == 0, nil
}

func seedEvents(ctx context.Context, conn *sql.DB, events []EventFixture) (int, error) {
	empty, err := tableEmpty(ctx, conn, "events")
	if err != nil || !empty {
		return 0, err
	}

	for i, e := range events {
		in := e.Input()
		if err := in.Validate(); err != nil {
			return i, fmt.Errorf("fixture event %q: %w", in.Slug, err)
		}
		if _, err := db.CreateEvent(ctx, conn, in); err != nil {
			return i, fmt.Errorf("fixture event %q: %w", in.Slug, err)
		}
	}
	return len(events), nil
}

func seedMedia(ctx context.Context, conn *sql.DB, media []MediaFixture) (int, error) {
	empty, err := tableEmpty(ctx, conn, "media_files")
	if err != nil || !empty {
		return 0, err
	}

	for i, m := range media {
		id, err := auth.GenerateID(16)
		if err != nil {
			return i, err
		}
		err = db.InsertMediaFile(ctx, conn, models.MediaFile{
			ID:           id,
			Filename:     m.Filename,
			OriginalName: m.OriginalName,
			FileType:     m.FileType,
			FileSize:     m.FileSize,
			URL:          m.URL,
			Bucket:       seedBucket,
		})
		if err != nil {
			return i, fmt.Errorf("fixture media %q: %w", m.Filename, err)
		}
	}
	return len(media), nil
}

func seedContacts(ctx context.Context, conn *sql.DB, contacts []ContactFixture) (int, error) {
	empty, err := tableEmpty(ctx, conn, "contact_submissions")
	if err != nil || !empty {
		return 0, err
	}

	for i, c := range contacts {
		id, err := db.SaveContactSubmission(ctx, conn, models.ContactRequest{
			Name:              c.Name,
			Email:             c.Email,
			Phone:             c.Phone,
			Subject:           c.Subject,
			Message:           c.Message,
			VolunteerInterest: c.VolunteerInterest,
			Locale:            c.Locale,
		})
		if err != nil {
			return i, fmt.Errorf("fixture contact %q: %w", c.Email, err)
		}
		if c.Status != "" && c.Status != models.ContactUnread {
			if err := db.UpdateContactStatus(ctx, conn, id, c.Status); err != nil {
				return i, fmt.Errorf("fixture contact %q: %w", c.Email, err)
			}
		}
	}
	return len(contacts), nil
}

func seedSettings(ctx context.Context, conn *sql.DB) (int, error) {
	empty, err := tableEmpty(ctx, conn, "site_settings")
	if err != nil || !empty {
		return 0, err
	}

	settings := models.DefaultSettings().ToMap()
	if err := db.SaveSettings(ctx, conn, settings); err != nil {
		return 0, err
	}
	return len(settings), nil
}
