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

func GetAdminByUsername(ctx context.Context, db *sql.DB, username string) (*models.AdminUser, error) {
	var u models.AdminUser
	var lastLogin sql.NullTime
	err := db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, role, created_at, last_login
		FROM admin_users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin %s: %w", username, err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}

// CreateAdminUser inserts an account with an already hashed password
func CreateAdminUser(ctx context.Context, db *sql.DB, u models.AdminUser) (int64, error) {
	role := u.Role
	if role == "" {
		role = models.RoleAdmin
	}

	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO admin_users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, u.Username, u.Email, u.PasswordHash, role).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicateUser
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create admin %s: %w", u.Username, err)
	}
	return id, nil
}

// SetAdminPassword replaces the password hash of an existing account
func SetAdminPassword(ctx context.Context, db *sql.DB, username, passwordHash string) error {
	res, err := db.ExecContext(ctx, "UPDATE admin_users SET password_hash = $1 WHERE username = $2", passwordHash, username)
	if err != nil {
		return fmt.Errorf("failed to update admin %s: %w", username, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func TouchAdminLogin(ctx context.Context, db *sql.DB, id int64) error {
	if _, err := db.ExecContext(ctx, "UPDATE admin_users SET last_login = NOW() WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to record login for admin %d: %w", id, err)
	}
	return nil
}

func CountAdmins(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_users").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}
