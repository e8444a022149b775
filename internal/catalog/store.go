package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

const timeLayout = time.RFC3339

// Store keeps the catalog in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateVendor inserts a vendor with a fresh ID.
func (s *Store) CreateVendor(ctx context.Context, name, contact string) (Vendor, error) {
	v := Vendor{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Contact:   strings.TrimSpace(contact),
		Active:    true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (id, name, contact, active, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, v.ID, v.Name, v.Contact, v.Active, v.CreatedAt.Format(timeLayout))
	if err != nil {
		return Vendor{}, fmt.Errorf("insert vendor: %w", err)
	}
	return v, nil
}

// GetVendor returns ErrNotFound when id is unknown.
func (s *Store) GetVendor(ctx context.Context, id string) (Vendor, error) {
	var v Vendor
	var contact sql.NullString
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, contact, active, created_at
		FROM vendors
		WHERE id = ?
	`, id).Scan(&v.ID, &v.Name, &contact, &v.Active, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Vendor{}, ErrNotFound
	}
	if err != nil {
		return Vendor{}, fmt.Errorf("query vendor: %w", err)
	}
	v.Contact = contact.String
	v.CreatedAt = parseTime(createdAt)
	return v, nil
}

// ListVendors returns vendors ordered by name.
func (s *Store) ListVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(contact, ''), active, created_at
		FROM vendors
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]Vendor, 0)
	for rows.Next() {
		var v Vendor
		var createdAt string
		if err := rows.Scan(&v.ID, &v.Name, &v.Contact, &v.Active, &createdAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		v.CreatedAt = parseTime(createdAt)
		vendors = append(vendors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}

	return vendors, nil
}

// CreateProduct inserts a product with a fresh ID. An empty unit defaults to "pcs".
func (s *Store) CreateProduct(ctx context.Context, name, sku, unit string) (Product, error) {
	p := Product{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		SKU:       strings.TrimSpace(sku),
		Unit:      strings.TrimSpace(unit),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if p.Unit == "" {
		p.Unit = "pcs"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, sku, unit, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.SKU, p.Unit, p.CreatedAt.Format(timeLayout))
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// GetProduct returns ErrNotFound when id is unknown.
func (s *Store) GetProduct(ctx context.Context, id string) (Product, error) {
	var p Product
	var sku sql.NullString
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, sku, unit, created_at
		FROM products
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &sku, &p.Unit, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("query product: %w", err)
	}
	p.SKU = sku.String
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// ListProducts returns products whose name or SKU contains query, ordered by name.
func (s *Store) ListProducts(ctx context.Context, query string) ([]Product, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(sku, ''), unit, created_at
		FROM products
		WHERE (? = '' OR name LIKE ? OR COALESCE(sku, '') LIKE ?)
		ORDER BY name COLLATE NOCASE, id
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Unit, &createdAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// AddQuote records a vendor price for productID. The vendor must exist in the store;
// q.VendorName is taken from the vendors table on read.
func (s *Store) AddQuote(ctx context.Context, productID string, q pricing.VendorQuote) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendor_prices (product_id, vendor_id, price, currency, delivery_time, minimum_quantity, valid_until)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, productID, q.VendorID, q.Price, q.Currency, q.DeliveryTime, q.MinimumQuantity, q.ValidUntil.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert vendor price: %w", err)
	}
	return nil
}

// ProductQuotes returns every quote for productID in insertion order.
func (s *Store) ProductQuotes(ctx context.Context, productID string) ([]pricing.VendorQuote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT vp.vendor_id, v.name, vp.price, vp.currency, vp.delivery_time, vp.minimum_quantity, vp.valid_until
		FROM vendor_prices vp
		JOIN vendors v ON v.id = vp.vendor_id
		WHERE vp.product_id = ?
		ORDER BY vp.id ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("query vendor prices: %w", err)
	}
	defer rows.Close()

	quotes := make([]pricing.VendorQuote, 0)
	for rows.Next() {
		var q pricing.VendorQuote
		var validUntil string
		if err := rows.Scan(&q.VendorID, &q.VendorName, &q.Price, &q.Currency, &q.DeliveryTime, &q.MinimumQuantity, &validUntil); err != nil {
			return nil, fmt.Errorf("scan vendor price: %w", err)
		}
		q.ValidUntil = parseTime(validUntil)
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendor prices: %w", err)
	}

	return quotes, nil
}

func parseTime(raw string) time.Time {
	if t, err := time.Parse(timeLayout, raw); err == nil {
		return t
	}
	// Rows written by SQLite defaults use "YYYY-MM-DD HH:MM:SS".
	if t, err := time.Parse(time.DateTime, raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
