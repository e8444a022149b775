// Package seed prepares a fresh database: the admin account and the pricing settings row.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

const (
	defaultProfitMargin  = 20
	defaultMinimumMargin = 5
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
	Currency      string
}

// Stats counts the rows each run touched.
type Stats struct {
	Inserts int
	Updates int
}

type step func(ctx context.Context, tx *sql.Tx, cfg Config, stats *Stats) error

// Run applies every seed step in one transaction. Running it again changes nothing unless
// the configured admin password differs from the stored one.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var stats Stats
	for _, run := range []step{syncAdmin, ensureSettings} {
		if err := run(ctx, tx, cfg, &stats); err != nil {
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return stats, nil
}

// syncAdmin creates the admin user, or rehashes its password when ADMIN_PASSWORD changed.
func syncAdmin(ctx context.Context, tx *sql.Tx, cfg Config, stats *Stats) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var stored string
	err := tx.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE email = ?`, cfg.AdminEmail).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("look up admin user: %w", err)
	case bcrypt.CompareHashAndPassword([]byte(stored), []byte(cfg.AdminPassword)) == nil:
		return nil
	}

	hash, hashErr := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if hashErr != nil {
		return fmt.Errorf("hash admin password: %w", hashErr)
	}

	if err == nil {
		if _, err := tx.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE email = ?`, string(hash), cfg.AdminEmail); err != nil {
			return fmt.Errorf("update admin password: %w", err)
		}
		stats.Updates++
		return nil
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, cfg.AdminEmail, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, cfg Config, stats *Stats) error {
	currency := cfg.Currency
	if currency == "" {
		currency = pricing.DefaultCurrency
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, default_profit_margin, minimum_margin, currency, round_prices, allow_negative_margins)
		VALUES (1, ?, ?, ?, TRUE, FALSE)
		ON CONFLICT(id) DO NOTHING
	`, defaultProfitMargin, defaultMinimumMargin, currency)
	if err != nil {
		return fmt.Errorf("insert settings row: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("count settings insert: %w", err)
	}
	stats.Inserts += int(n)
	return nil
}
