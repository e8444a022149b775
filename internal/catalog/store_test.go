package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Simplici0/supplydesk/internal/db"
	"github.com/Simplici0/supplydesk/internal/migrations"
	"github.com/Simplici0/supplydesk/internal/pricing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewStore(database)
}

func TestStore_VendorsAndProducts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.CreateVendor(ctx, "  Zeta Traders ", "zeta@example.com"); err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	alpha, err := store.CreateVendor(ctx, "Alpha Supplies", "")
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}

	vendors, err := store.ListVendors(ctx)
	if err != nil {
		t.Fatalf("list vendors: %v", err)
	}
	if len(vendors) != 2 || vendors[0].Name != "Alpha Supplies" || vendors[1].Name != "Zeta Traders" {
		t.Fatalf("unexpected vendors: %+v", vendors)
	}

	got, err := store.GetVendor(ctx, alpha.ID)
	if err != nil {
		t.Fatalf("get vendor: %v", err)
	}
	if got.Name != "Alpha Supplies" || !got.Active {
		t.Fatalf("unexpected vendor: %+v", got)
	}

	product, err := store.CreateProduct(ctx, "Copper cable 2.5mm", "CC-25", "")
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.Unit != "pcs" {
		t.Fatalf("unit=%q, want pcs", product.Unit)
	}
	if _, err := store.CreateProduct(ctx, "Steel bolt", "SB-10", "box"); err != nil {
		t.Fatalf("create product: %v", err)
	}

	filtered, err := store.ListProducts(ctx, "CC-")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != product.ID {
		t.Fatalf("unexpected filtered products: %+v", filtered)
	}

	all, err := store.ListProducts(ctx, "")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 products, got %d", len(all))
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.GetProduct(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProduct err=%v, want ErrNotFound", err)
	}
	if _, err := store.GetVendor(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetVendor err=%v, want ErrNotFound", err)
	}
}

func TestStore_ProductQuotesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	product, err := store.CreateProduct(ctx, "LED panel", "", "")
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	first, _ := store.CreateVendor(ctx, "Bravo", "")
	second, _ := store.CreateVendor(ctx, "Alpha", "")

	validUntil := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, q := range []pricing.VendorQuote{
		{VendorID: first.ID, Price: 80, Currency: "BDT", DeliveryTime: "7-10 days", MinimumQuantity: 5, ValidUntil: validUntil},
		{VendorID: second.ID, Price: 80, Currency: "BDT", DeliveryTime: "3 days", MinimumQuantity: 1, ValidUntil: validUntil},
	} {
		if err := store.AddQuote(ctx, product.ID, q); err != nil {
			t.Fatalf("add quote: %v", err)
		}
	}

	quotes, err := store.ProductQuotes(ctx, product.ID)
	if err != nil {
		t.Fatalf("product quotes: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].VendorName != "Bravo" || quotes[1].VendorName != "Alpha" {
		t.Fatalf("quotes not in insertion order: %+v", quotes)
	}
	if quotes[0].MinimumQuantity != 5 || quotes[0].DeliveryTime != "7-10 days" {
		t.Fatalf("unexpected quote fields: %+v", quotes[0])
	}
	if !quotes[0].ValidUntil.Equal(validUntil) {
		t.Fatalf("validUntil=%v, want %v", quotes[0].ValidUntil, validUntil)
	}

	comparisons := pricing.NewCalculator("BDT").CompareVendorPrices(quotes, 10)
	if !comparisons[0].IsLowest || comparisons[0].VendorName != "Bravo" {
		t.Fatalf("expected first stored quote to win the lowest tie: %+v", comparisons[0])
	}
}

func TestStore_AddQuoteRequiresExistingVendor(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	product, err := store.CreateProduct(ctx, "Switch", "", "")
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	err = store.AddQuote(ctx, product.ID, pricing.VendorQuote{VendorID: "ghost", Price: 10, Currency: "BDT", MinimumQuantity: 1})
	if err == nil {
		t.Fatalf("expected foreign key error for unknown vendor")
	}
}
