// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/danielhkuo/vanarsena/models"
)

func TestLoad_FixturesAreValid(t *testing.T) {
	f, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(f.Events) == 0 || len(f.Media) == 0 || len(f.Contacts) == 0 {
		t.Fatalf("Expected every section to have fixtures, got %d/%d/%d", len(f.Events), len(f.Media), len(f.Contacts))
	}

	slugs := map[string]bool{}
	for _, e := range f.Events {
		in := e.Input()
		if err := in.Validate(); err != nil {
			t.Errorf("Event %q invalid: %v", e.Slug, err)
		}
		if slugs[in.Slug] {
			t.Errorf("Duplicate slug %q", in.Slug)
		}
		slugs[in.Slug] = true
	}

	for _, m := range f.Media {
		if !models.IsAllowedMediaType(m.FileType) {
			t.Errorf("Media %q has disallowed type %q", m.Filename, m.FileType)
		}
	}

	for _, c := range f.Contacts {
		req := models.ContactRequest{Name: c.Name, Email: c.Email, Subject: c.Subject, Message: c.Message}
		if err := req.Validate(); err != nil {
			t.Errorf("Contact %q invalid: %v", c.Email, err)
		}
		if !models.IsValidContactStatus(c.Status) {
			t.Errorf("Contact %q has bad status %q", c.Email, c.Status)
		}
	}
}

func TestEventFixture_InputDefaultsMetaTitle(t *testing.T) {
	in := EventFixture{
		Slug:      "winter-blanket-distribution",
		EventDate: "2026-12-20",
		TitleHi:   "कंबल वितरण",
		TitleEn:   "Blanket Distribution",
	}.Input()

	if in.MetaTitleEn != "Blanket Distribution" || in.MetaTitleHi != "कंबल वितरण" {
		t.Errorf("Expected meta titles to default to titles, got %q / %q", in.MetaTitleHi, in.MetaTitleEn)
	}
	if in.Tags == nil {
		t.Error("Expected non-nil tags")
	}
}

func TestApply_SkipsNonEmptyTables(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	for _, table := range []string{"events", "media_files", "contact_submissions", "site_settings"} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM " + table)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	}

	f, _ := Load()
	res, err := Apply(context.Background(), conn, f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res != (Result{}) {
		t.Errorf("Expected nothing seeded, got %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}

func TestApply_SeedsEmptyTables(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	count := func(table string, n int) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM " + table)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
	}

	count("events", 1)
	count("media_files", 1)

	count("contact_submissions", 0)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_submissions")).
		WithArgs("Asha", "asha@example.org", nil, "Hello", "Hi there", true, "en", models.ContactUnread).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE contact_submissions SET status")).
		WithArgs(models.ContactReplied, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count("site_settings", 0)
	settings := models.DefaultSettings().ToMap()
	mock.ExpectBegin()
	for range settings {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO site_settings")).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	f := Fixtures{
		Contacts: []ContactFixture{{
			Name:              "Asha",
			Email:             "asha@example.org",
			Subject:           "Hello",
			Message:           "Hi there",
			VolunteerInterest: true,
			Locale:            "en",
			Status:            models.ContactReplied,
		}},
	}

	res, err := Apply(context.Background(), conn, f)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := Result{Contacts: 1, Settings: len(settings)}
	if res != want {
		t.Errorf("Expected %+v, got %+v", want, res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet expectations: %v", err)
	}
}
