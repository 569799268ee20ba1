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

const mediaColumns = `id, filename, original_name, file_type, file_size, url, bucket, object_key, uploaded_at`

func scanMedia(row scanner) (models.MediaFile, error) {
	var m models.MediaFile
	err := row.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.FileType, &m.FileSize,
		&m.URL, &m.Bucket, &m.ObjectKey, &m.UploadedAt)
	return m, err
}

// mediaTypeFilters maps a list filter onto a file_type pattern
var mediaTypeFilters = map[string]string{
	models.MediaImage: "image/%",
	models.MediaVideo: "video/%",
}

func InsertMediaFile(ctx context.Context, db *sql.DB, m models.MediaFile) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO media_files (id, filename, original_name, file_type, file_size, url, bucket, object_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.Filename, m.OriginalName, m.FileType, m.FileSize, m.URL, m.Bucket, m.ObjectKey)
	if err != nil {
		return fmt.Errorf("failed to insert media file: %w", err)
	}
	return nil
}

// ListMediaFiles returns media newest first. filter is all, image, video
// or document; documents are everything that is neither image nor video.
func ListMediaFiles(ctx context.Context, db *sql.DB, filter string) ([]models.MediaFile, error) {
	query := "SELECT " + mediaColumns + " FROM media_files"
	var args []any
	switch filter {
	case models.MediaImage, models.MediaVideo:
		query += " WHERE file_type LIKE $1"
		args = append(args, mediaTypeFilters[filter])
	case models.MediaDocument:
		query += " WHERE file_type NOT LIKE 'image/%' AND file_type NOT LIKE 'video/%'"
	}
	query += " ORDER BY uploaded_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query media: %w", err)
	}
	defer rows.Close()

	files := []models.MediaFile{}
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		files = append(files, m)
	}
	return files, rows.Err()
}

func GetMediaFile(ctx context.Context, db *sql.DB, id string) (*models.MediaFile, error) {
	m, err := scanMedia(db.QueryRowContext(ctx, "SELECT "+mediaColumns+" FROM media_files WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query media %s: %w", id, err)
	}
	return &m, nil
}

func DeleteMediaFile(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, "DELETE FROM media_files WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete media %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
