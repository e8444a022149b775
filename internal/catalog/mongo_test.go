package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

func TestMongoQuoteSource_RoundTrip(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	dbName := "supplydesk_test_" + uuid.NewString()[:8]
	t.Cleanup(func() { _ = client.Database(dbName).Drop(context.Background()) })

	src := NewMongoQuoteSource(client, dbName)
	if err := src.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	validUntil := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	for _, q := range []pricing.VendorQuote{
		{VendorID: "v1", VendorName: "First", Price: 120, Currency: "BDT", DeliveryTime: "5 days", MinimumQuantity: 1, ValidUntil: validUntil},
		{VendorID: "v2", VendorName: "Second", Price: 95, Currency: "BDT", DeliveryTime: "10-14 days", MinimumQuantity: 10, ValidUntil: validUntil},
	} {
		if err := src.AddQuote(ctx, "p1", q); err != nil {
			t.Fatalf("add quote: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	quotes, err := src.ProductQuotes(ctx, "p1")
	if err != nil {
		t.Fatalf("product quotes: %v", err)
	}
	if len(quotes) != 2 || quotes[0].VendorName != "First" || quotes[1].VendorName != "Second" {
		t.Fatalf("unexpected quotes: %+v", quotes)
	}
	if !quotes[1].ValidUntil.Equal(validUntil) {
		t.Fatalf("validUntil=%v, want %v", quotes[1].ValidUntil, validUntil)
	}

	empty, err := src.ProductQuotes(ctx, "other")
	if err != nil {
		t.Fatalf("product quotes: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no quotes, got %d", len(empty))
	}
}
