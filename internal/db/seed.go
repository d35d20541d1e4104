package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the initial admin account when no user with the given
// username exists. Seeding is skipped (with a warning) when password is empty,
// so production deployments must set ADMIN_PASSWORD explicitly.
func EnsureAdmin(ctx context.Context, database *sql.DB, username, email, password, company string) error {
	if password == "" {
		slog.Warn("admin seeding skipped: ADMIN_PASSWORD not set")
		return nil
	}

	var id int
	err := database.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = $1`, username,
	).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = database.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, company)
		 VALUES ($1, $2, $3, 'admin', $4)`,
		username, email, string(hash), company,
	)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	slog.Info("created admin user", "username", username)
	return nil
}
