// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/vanarsena/models"
)

// GetDashboardStats counts events, media and contact submissions
func GetDashboardStats(ctx context.Context, db *sql.DB) (models.DashboardStats, error) {
	var s models.DashboardStats
	err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(*) FROM events WHERE visibility = 'published'),
			(SELECT COUNT(*) FROM events WHERE visibility = 'draft'),
			(SELECT COUNT(*) FROM events WHERE visibility = 'published' AND event_date >= CURRENT_DATE),
			(SELECT COUNT(*) FROM media_files),
			(SELECT COUNT(*) FROM contact_submissions),
			(SELECT COUNT(*) FROM contact_submissions WHERE status = 'unread')
	`).Scan(&s.TotalEvents, &s.PublishedEvents, &s.DraftEvents, &s.UpcomingEvents,
		&s.TotalMedia, &s.ContactSubmissions, &s.UnreadContacts)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to query dashboard stats: %w", err)
	}
	return s, nil
}

// CountRows returns the row count of one of the known tables
func CountRows(ctx context.Context, db *sql.DB, table string) (int, error) {
	known := false
	for _, t := range Tables {
		if t == table {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
