// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/vanarsena/models"
)

const contactColumns = `id, name, email, COALESCE(phone, ''), subject, message, volunteer_interest, locale, status, submitted_at`

func scanContact(row scanner) (models.ContactSubmission, error) {
	var c models.ContactSubmission
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.VolunteerInterest, &c.Locale, &c.Status, &c.SubmittedAt)
	return c, err
}

// SaveContactSubmission stores a validated contact form as unread
func SaveContactSubmission(ctx context.Context, db *sql.DB, req models.ContactRequest) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO contact_submissions (name, email, phone, subject, message, volunteer_interest, locale, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, req.Name, req.Email, nullString(req.Phone), req.Subject, req.Message,
		req.VolunteerInterest, req.Locale, models.ContactUnread).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save contact submission: %w", err)
	}
	return id, nil
}

// ListContactSubmissions returns submissions newest first, optionally by status
func ListContactSubmissions(ctx context.Context, db *sql.DB, status string) ([]models.ContactSubmission, error) {
	query := "SELECT " + contactColumns + " FROM contact_submissions"
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY submitted_at DESC, id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []models.ContactSubmission{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func GetContactSubmission(ctx context.Context, db *sql.DB, id int64) (*models.ContactSubmission, error) {
	c, err := scanContact(db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contact_submissions WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact %d: %w", id, err)
	}
	return &c, nil
}

func UpdateContactStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	res, err := db.ExecContext(ctx, "UPDATE contact_submissions SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update contact %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteContactSubmission(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM contact_submissions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
