// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/danielhkuo/vanarsena/models"
)

// Event list types
const (
	EventsAll      = ""
	EventsUpcoming = "upcoming"
	EventsPast     = "past"
)

// EventQuery filters the public event list
type EventQuery struct {
	Locale string
	Type   string
	Tag    string
	Limit  int
	Offset int
}

// eventColumns selects the parent row; translation columns follow it
const eventColumns = `
	e.id, e.slug, to_char(e.event_date, 'YYYY-MM-DD'), COALESCE(to_char(e.event_time, 'HH24:MI'), ''),
	COALESCE(e.location, ''), e.tags, e.media_urls, e.video_urls, e.document_urls,
	COALESCE(e.featured_image, ''), e.visibility, e.created_at, e.updated_at`

const translationColumns = `
	t.locale, t.title, COALESCE(t.description, ''), COALESCE(t.meta_title, ''), COALESCE(t.meta_description, '')`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Slug, &e.EventDate, &e.EventTime,
		&e.Location, pq.Array(&e.Tags), pq.Array(&e.MediaURLs), pq.Array(&e.VideoURLs), pq.Array(&e.DocumentURLs),
		&e.FeaturedImage, &e.Visibility, &e.CreatedAt, &e.UpdatedAt,
		&e.Locale, &e.Title, &e.Description, &e.MetaTitle, &e.MetaDescription,
	)
	return e, err
}

// publishedFilter builds the WHERE clause shared by list and count
func publishedFilter(q EventQuery) (string, []any) {
	args := []any{q.Locale}
	where := []string{"e.visibility = 'published'"}

	switch q.Type {
	case EventsUpcoming:
		where = append(where, "e.event_date >= CURRENT_DATE")
	case EventsPast:
		where = append(where, "e.event_date < CURRENT_DATE")
	}
	if q.Tag != "" {
		args = append(args, q.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(e.tags)", len(args)))
	}

	return `
		FROM events e
		JOIN event_translations t ON t.event_id = e.id AND t.locale = $1
		WHERE ` + strings.Join(where, " AND "), args
}

// ListPublishedEvents returns one page of published events in a locale
// along with the total number of matches. Upcoming events sort soonest
// first, everything else newest first.
func ListPublishedEvents(ctx context.Context, db *sql.DB, q EventQuery) ([]models.Event, int, error) {
	from, args := publishedFilter(q)

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) "+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	order := "e.event_date DESC, e.event_time DESC NULLS LAST, e.id DESC"
	if q.Type == EventsUpcoming {
		order = "e.event_date ASC, e.event_time ASC NULLS LAST, e.id ASC"
	}

	query := "SELECT " + eventColumns + "," + translationColumns + from + " ORDER BY " + order
	if q.Limit > 0 {
		args = append(args, q.Limit, q.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read events: %w", err)
	}

	return events, total, nil
}

// GetPublishedEventBySlug returns a published event in a locale
func GetPublishedEventBySlug(ctx context.Context, db *sql.DB, slug, locale string) (*models.Event, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`,`+translationColumns+`
		FROM events e
		JOIN event_translations t ON t.event_id = e.id AND t.locale = $2
		WHERE e.slug = $1 AND e.visibility = 'published'
	`, slug, locale)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	return &e, nil
}

const adminEventQuery = `
	SELECT ` + eventColumns + `,
		COALESCE(hi.title, ''), COALESCE(hi.description, ''), COALESCE(hi.meta_title, ''), COALESCE(hi.meta_description, ''),
		COALESCE(en.title, ''), COALESCE(en.description, ''), COALESCE(en.meta_title, ''), COALESCE(en.meta_description, '')
	FROM events e
	LEFT JOIN event_translations hi ON hi.event_id = e.id AND hi.locale = 'hi'
	LEFT JOIN event_translations en ON en.event_id = e.id AND en.locale = 'en'`

func scanAdminEvent(row scanner) (models.AdminEvent, error) {
	var e models.AdminEvent
	err := row.Scan(
		&e.ID, &e.Slug, &e.EventDate, &e.EventTime,
		&e.Location, pq.Array(&e.Tags), pq.Array(&e.MediaURLs), pq.Array(&e.VideoURLs), pq.Array(&e.DocumentURLs),
		&e.FeaturedImage, &e.Visibility, &e.CreatedAt, &e.UpdatedAt,
		&e.Hi.Title, &e.Hi.Description, &e.Hi.MetaTitle, &e.Hi.MetaDescription,
		&e.En.Title, &e.En.Description, &e.En.MetaTitle, &e.En.MetaDescription,
	)
	e.Published = e.Visibility == models.VisibilityPublished
	return e, err
}

// ListAdminEvents returns every event with both translations, newest first.
// filter is all, published or draft.
func ListAdminEvents(ctx context.Context, db *sql.DB, filter string) ([]models.AdminEvent, error) {
	query := adminEventQuery
	var args []any
	if filter == models.VisibilityPublished || filter == models.VisibilityDraft {
		query += " WHERE e.visibility = $1"
		args = append(args, filter)
	}
	query += " ORDER BY e.created_at DESC, e.id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin events: %w", err)
	}
	defer rows.Close()

	events := []models.AdminEvent{}
	for rows.Next() {
		e, err := scanAdminEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func GetAdminEvent(ctx context.Context, db *sql.DB, id int64) (*models.AdminEvent, error) {
	e, err := scanAdminEvent(db.QueryRowContext(ctx, adminEventQuery+" WHERE e.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event %d: %w", id, err)
	}
	return &e, nil
}

// CreateEvent inserts an event and both of its translations in one
// transaction. The input must already be normalized and validated.
func CreateEvent(ctx context.Context, db *sql.DB, in models.EventInput) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO events (slug, event_date, event_time, location, tags, media_urls, video_urls, document_urls, visibility, featured_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, in.Slug, in.EventDate, nullString(in.EventTime), in.Location,
		textArray(in.Tags), textArray(in.MediaURLs), textArray(in.VideoURLs), textArray(in.DocumentURLs),
		in.Visibility(), nullString(in.FeaturedImage)).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicateSlug
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}

	for _, locale := range []string{"hi", "en"} {
		if err := upsertTranslation(ctx, tx, id, locale, in.Translation(locale)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit event: %w", err)
	}
	return id, nil
}

// UpdateEvent rewrites an event and upserts both translations in one transaction
func UpdateEvent(ctx context.Context, db *sql.DB, id int64, in models.EventInput) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE events
		SET slug = $1, event_date = $2, event_time = $3, location = $4, tags = $5,
			media_urls = $6, video_urls = $7, document_urls = $8, visibility = $9,
			featured_image = $10, updated_at = NOW()
		WHERE id = $11
	`, in.Slug, in.EventDate, nullString(in.EventTime), in.Location,
		textArray(in.Tags), textArray(in.MediaURLs), textArray(in.VideoURLs), textArray(in.DocumentURLs),
		in.Visibility(), nullString(in.FeaturedImage), id)
	if isUniqueViolation(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("failed to update event %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	for _, locale := range []string{"hi", "en"} {
		if err := upsertTranslation(ctx, tx, id, locale, in.Translation(locale)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event %d: %w", id, err)
	}
	return nil
}

func upsertTranslation(ctx context.Context, tx *sql.Tx, eventID int64, locale string, t models.EventTranslation) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO event_translations (event_id, locale, title, description, meta_title, meta_description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, locale) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			meta_title = EXCLUDED.meta_title,
			meta_description = EXCLUDED.meta_description,
			updated_at = NOW()
	`, eventID, locale, t.Title, t.Description, nullString(t.MetaTitle), nullString(t.MetaDescription))
	if err != nil {
		return fmt.Errorf("failed to save %s translation: %w", locale, err)
	}
	return nil
}

// DeleteEvent removes an event; translations cascade
func DeleteEvent(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetEventPublished flips an event between draft and published
func SetEventPublished(ctx context.Context, db *sql.DB, id int64, published bool) error {
	visibility := models.VisibilityDraft
	if published {
		visibility = models.VisibilityPublished
	}

	res, err := db.ExecContext(ctx,
		"UPDATE events SET visibility = $1, updated_at = NOW() WHERE id = $2",
		visibility, id)
	if err != nil {
		return fmt.Errorf("failed to update visibility of event %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// textArray binds a TEXT[] parameter; nil becomes '{}' for NOT NULL columns
func textArray(items []string) any {
	if items == nil {
		items = []string{}
	}
	return pq.Array(items)
}

// nullString stores empty optional text as NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
