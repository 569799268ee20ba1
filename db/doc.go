// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles schema creation and data access.

# Schema Creation

CreateSchema initializes all required tables and then applies column
migrations:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - tables and indexes use IF NOT EXISTS and
migrations use ADD COLUMN IF NOT EXISTS.

# Tables

  - events: date, time, location, tags, media links, visibility
  - event_translations: one row per event and locale (hi, en)
  - media_files: uploaded objects and their public URLs
  - contact_submissions: contact form messages with triage status
  - admin_users: bcrypt-hashed admin accounts
  - site_settings: key/value site configuration

# Data Access

Every function takes a context and the *sql.DB and runs plain SQL with
lib/pq. There is no ORM and no caching.

	events, total, err := db.ListPublishedEvents(ctx, conn, db.EventQuery{
		Locale: "hi",
		Type:   db.EventsUpcoming,
		Limit:  10,
	})

CreateEvent and UpdateEvent write the events row and both translations in
a single transaction, so a reader never sees an event without its hi and en
text. Public reads inner-join the requested locale.

# Errors

Missing rows are reported as ErrNotFound. Unique violations on the event
slug become ErrDuplicateSlug, and on admin usernames ErrDuplicateUser.
Everything else is wrapped with context and returned.
*/
package db
