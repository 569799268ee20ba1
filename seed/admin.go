// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/vanarsena/auth"
	"github.com/danielhkuo/vanarsena/db"
	"github.com/danielhkuo/vanarsena/models"
)

// Admin describes the account created by BootstrapAdmin and CreateAdmin
type Admin struct {
	Username string
	Email    string
	Password string
}

func (a Admin) validate() error {
	if a.Username == "" || a.Password == "" {
		return errors.New("admin username and password are required")
	}
	if len(a.Password) < 8 {
		return errors.New("admin password must be at least 8 characters")
	}
	return nil
}

// BootstrapAdmin creates the account only when no admin exists yet.
// It reports whether an account was created.
func BootstrapAdmin(ctx context.Context, conn *sql.DB, a Admin) (bool, error) {
	n, err := db.CountAdmins(ctx, conn)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := CreateAdmin(ctx, conn, a, false); err != nil {
		return false, err
	}
	return true, nil
}

// CreateAdmin adds an admin account. With reset, an existing account of the
// same username gets the new password instead of failing.
func CreateAdmin(ctx context.Context, conn *sql.DB, a Admin, reset bool) error {
	if err := a.validate(); err != nil {
		return err
	}

	hash, err := auth.HashPassword(a.Password, auth.DefaultBcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = db.CreateAdminUser(ctx, conn, models.AdminUser{
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	if errors.Is(err, db.ErrDuplicateUser) && reset {
		if err := db.SetAdminPassword(ctx, conn, a.Username, hash); err != nil {
			return err
		}
		slog.Info("admin password reset", "username", a.Username)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("admin created", "username", a.Username)
	return nil
}
