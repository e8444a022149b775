package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

// settings is the pricing policy singleton (row id = 1).
type settings struct {
	DefaultProfitMargin  float64 `json:"default_profit_margin"`
	MinimumMargin        float64 `json:"minimum_margin"`
	Currency             string  `json:"currency"`
	RoundPrices          bool    `json:"round_prices"`
	AllowNegativeMargins bool    `json:"allow_negative_margins"`
}

func (st settings) calculator() pricing.Calculator {
	return pricing.Calculator{Currency: st.Currency, RoundPrices: st.RoundPrices}
}

// resolveMargin falls back to the default margin and enforces the negative margin policy.
func (st settings) resolveMargin(margin *float64) (float64, error) {
	m := st.DefaultProfitMargin
	if margin != nil {
		m = *margin
	}
	if m < 0 && !st.AllowNegativeMargins {
		return 0, fmt.Errorf("profit_margin must not be negative")
	}
	return m, nil
}

func (st settings) validate() error {
	if len(st.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	if st.DefaultProfitMargin < 0 && !st.AllowNegativeMargins {
		return fmt.Errorf("default_profit_margin must not be negative")
	}
	if st.MinimumMargin < 0 && !st.AllowNegativeMargins {
		return fmt.Errorf("minimum_margin must not be negative")
	}
	return nil
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	st, err := s.getSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var st settings
	if err := decodeJSON(w, r, &st); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st.Currency = strings.ToUpper(strings.TrimSpace(st.Currency))
	if err := st.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.saveSettings(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) getSettings(ctx context.Context) (settings, error) {
	var st settings
	err := s.db.QueryRowContext(ctx, `
		SELECT default_profit_margin, minimum_margin, currency, round_prices, allow_negative_margins
		FROM settings
		WHERE id = 1
	`).Scan(&st.DefaultProfitMargin, &st.MinimumMargin, &st.Currency, &st.RoundPrices, &st.AllowNegativeMargins)
	if errors.Is(err, sql.ErrNoRows) {
		return settings{
			DefaultProfitMargin: 20,
			MinimumMargin:       5,
			Currency:            s.currency,
			RoundPrices:         true,
		}, nil
	}
	if err != nil {
		return settings{}, fmt.Errorf("query settings: %w", err)
	}
	return st, nil
}

func (s *server) saveSettings(ctx context.Context, st settings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, default_profit_margin, minimum_margin, currency, round_prices, allow_negative_margins)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			default_profit_margin = excluded.default_profit_margin,
			minimum_margin = excluded.minimum_margin,
			currency = excluded.currency,
			round_prices = excluded.round_prices,
			allow_negative_margins = excluded.allow_negative_margins,
			updated_at = CURRENT_TIMESTAMP
	`, st.DefaultProfitMargin, st.MinimumMargin, st.Currency, st.RoundPrices, st.AllowNegativeMargins)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
