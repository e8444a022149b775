// Package catalog stores vendors, products and the vendor price quotes that feed
// price comparisons.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

// ErrNotFound is returned when a vendor or product does not exist.
var ErrNotFound = errors.New("not found")

// Vendor supplies products at quoted prices.
type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is an item the company resells.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteSource stores vendor quotes per product. Quotes come back in the order they were
// added; comparisons break ties on that order.
type QuoteSource interface {
	AddQuote(ctx context.Context, productID string, q pricing.VendorQuote) error
	ProductQuotes(ctx context.Context, productID string) ([]pricing.VendorQuote, error)
}
