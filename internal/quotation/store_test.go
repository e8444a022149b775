package quotation

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

func seedQuotation(t *testing.T, store *Store, client, notes string, createdAt time.Time, vendorPrice float64) Quotation {
	t.Helper()

	q := Build(pricing.NewCalculator("BDT"), Input{
		ClientName: client,
		Notes:      notes,
		Items:      []LineInput{{Description: "Item", VendorPrice: vendorPrice, Quantity: 1}},
	}, 10, nil)
	q.CreatedAt = createdAt

	saved, err := store.Create(context.Background(), q)
	if err != nil {
		t.Fatalf("create quotation: %v", err)
	}
	return saved
}

func TestStore_ListOrdersByDateDescAndReadsTotal(t *testing.T) {
	store := newTestStore(t)

	seedQuotation(t, store, "First", "note one", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 100)
	seedQuotation(t, store, "Third", "note three", time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), 300)
	seedQuotation(t, store, "Second", "note two", time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC), 200)

	list, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list quotations: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 quotations, got %d", len(list))
	}
	if list[0].ClientName != "Third" || list[1].ClientName != "Second" || list[2].ClientName != "First" {
		t.Fatalf("quotations are not sorted desc by created_at: %+v", list)
	}
	if list[0].Total != 330 || list[1].Total != 220 || list[2].Total != 110 {
		t.Fatalf("unexpected totals: %+v", list)
	}
}

func TestStore_ListFiltersByClientAndNotes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedQuotation(t, store, "Casa Traders", "red cables", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), 80)
	seedQuotation(t, store, "Keyring Co", "vip client", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), 120)
	seedQuotation(t, store, "Prototype Ltd", "urgent for casa", time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), 160)

	byClient, err := store.List(ctx, "Keyring")
	if err != nil {
		t.Fatalf("list by client: %v", err)
	}
	if len(byClient) != 1 || byClient[0].ClientName != "Keyring Co" {
		t.Fatalf("expected 1 quotation filtered by client, got %+v", byClient)
	}

	byNotes, err := store.List(ctx, "casa")
	if err != nil {
		t.Fatalf("list by notes: %v", err)
	}
	if len(byNotes) != 2 {
		t.Fatalf("expected 2 quotations filtered by client/notes, got %+v", byNotes)
	}
}

func TestStore_GetReadsSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := seedQuotation(t, store, "Snapshot Inc", "", time.Date(2024, 2, 1, 14, 0, 0, 0, time.UTC), 123.45)

	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get quotation: %v", err)
	}
	if got.Number != saved.Number || got.ClientName != "Snapshot Inc" {
		t.Fatalf("unexpected quotation: %+v", got)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("createdAt=%v, want %v", got.CreatedAt, saved.CreatedAt)
	}
	if len(got.Items) != 1 || got.Items[0].UnitPrice != 135.8 {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.Totals.Total != saved.Totals.Total {
		t.Fatalf("total=%v, want %v", got.Totals.Total, saved.Totals.Total)
	}

	if _, err := store.Get(ctx, saved.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
