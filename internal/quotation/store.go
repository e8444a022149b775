package quotation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Summary is a row of the quotation list.
type Summary struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	CreatedAt  time.Time `json:"created_at"`
	ClientName string    `json:"client_name"`
	Currency   string    `json:"currency"`
	Total      float64   `json:"total"`
}

// Store persists quotations in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create saves q with its items in one transaction and returns it with its ID set.
func (s *Store) Create(ctx context.Context, q Quotation) (Quotation, error) {
	totalsJSON, err := json.Marshal(q.Totals)
	if err != nil {
		return Quotation{}, fmt.Errorf("encode quotation totals: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Quotation{}, fmt.Errorf("begin quotation transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO quotations (number, created_at, client_name, notes, currency, totals_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, q.Number, q.CreatedAt.UTC().Format(time.DateTime), q.ClientName, q.Notes, q.Currency, string(totalsJSON))
	if err != nil {
		return Quotation{}, fmt.Errorf("insert quotation: %w", err)
	}
	q.ID, err = res.LastInsertId()
	if err != nil {
		return Quotation{}, fmt.Errorf("read quotation id: %w", err)
	}

	for i, it := range q.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO quotation_items (
				quotation_id, position, description, quantity, vendor_price,
				profit_margin, discount_percent, unit_price, line_total
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, q.ID, i, it.Description, it.Quantity, it.VendorPrice, it.ProfitMargin, it.DiscountPercent, it.UnitPrice, it.LineTotal); err != nil {
			return Quotation{}, fmt.Errorf("insert quotation item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Quotation{}, fmt.Errorf("commit quotation: %w", err)
	}
	return q, nil
}

// List returns quotations newest first, filtered on client name or notes.
func (s *Store) List(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, created_at, client_name, currency, totals_json
		FROM quotations
		WHERE (? = '' OR client_name LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotations: %w", err)
	}
	defer rows.Close()

	list := make([]Summary, 0)
	for rows.Next() {
		var item Summary
		var createdAt, totalsJSON string
		if err := rows.Scan(&item.ID, &item.Number, &createdAt, &item.ClientName, &item.Currency, &totalsJSON); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		item.CreatedAt = parseTime(createdAt)
		item.Total = decodeTotals(totalsJSON).Total
		list = append(list, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotations: %w", err)
	}

	return list, nil
}

// Get reads the stored snapshot of quotation id.
func (s *Store) Get(ctx context.Context, id int64) (Quotation, error) {
	var q Quotation
	var createdAt, totalsJSON string
	var notes sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, number, created_at, client_name, notes, currency, totals_json
		FROM quotations
		WHERE id = ?
	`, id).Scan(&q.ID, &q.Number, &createdAt, &q.ClientName, &notes, &q.Currency, &totalsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Quotation{}, ErrNotFound
	}
	if err != nil {
		return Quotation{}, fmt.Errorf("query quotation: %w", err)
	}
	q.CreatedAt = parseTime(createdAt)
	q.Notes = notes.String
	q.Totals = decodeTotals(totalsJSON)

	rows, err := s.db.QueryContext(ctx, `
		SELECT description, quantity, vendor_price, profit_margin, discount_percent, unit_price, line_total
		FROM quotation_items
		WHERE quotation_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return Quotation{}, fmt.Errorf("query quotation items: %w", err)
	}
	defer rows.Close()

	q.Items = make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.Description, &it.Quantity, &it.VendorPrice, &it.ProfitMargin, &it.DiscountPercent, &it.UnitPrice, &it.LineTotal); err != nil {
			return Quotation{}, fmt.Errorf("scan quotation item: %w", err)
		}
		q.Items = append(q.Items, it)
	}
	if err := rows.Err(); err != nil {
		return Quotation{}, fmt.Errorf("iterate quotation items: %w", err)
	}

	return q, nil
}

func decodeTotals(raw string) Totals {
	var t Totals
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return Totals{}
	}
	return t
}

func parseTime(raw string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
