package export

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/supplydesk/internal/pricing"
	"github.com/Simplici0/supplydesk/internal/quotation"
)

func sampleComparison() []pricing.VendorComparison {
	quotes := []pricing.VendorQuote{
		{VendorID: "v1", VendorName: "Alpha Supplies", Price: 100, Currency: "BDT", DeliveryTime: "7-10 days", MinimumQuantity: 1, ValidUntil: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
		{VendorID: "v2", VendorName: "Bravo Traders", Price: 80, Currency: "BDT", DeliveryTime: "15 days", MinimumQuantity: 10, ValidUntil: time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)},
	}
	return pricing.NewCalculator("BDT").CompareVendorPrices(quotes, 20)
}

func TestMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1176, "1176.00"},
		{12.345, "12.35"},
		{0, "0.00"},
		{-3.5, "-3.50"},
		{math.NaN(), "n/a"},
		{math.Inf(1), "n/a"},
	}
	for _, tc := range cases {
		if got := Money(tc.in); got != tc.want {
			t.Fatalf("Money(%v)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestComparisonXLSX(t *testing.T) {
	data, err := ComparisonXLSX("LED panel", sampleComparison())
	if err != nil {
		t.Fatalf("ComparisonXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(comparisonSheet, "A1")
	if err != nil || title != "LED panel" {
		t.Fatalf("title=%q err=%v", title, err)
	}
	vendor, _ := f.GetCellValue(comparisonSheet, "A3")
	lowest, _ := f.GetCellValue(comparisonSheet, "K3")
	savings, _ := f.GetCellValue(comparisonSheet, "G4")
	if vendor != "Bravo Traders" || lowest != "yes" {
		t.Fatalf("expected cheapest vendor first, got vendor=%q lowest=%q", vendor, lowest)
	}
	if savings != "20.00" {
		t.Fatalf("savings=%q, want 20.00", savings)
	}
}

func TestComparisonPDF(t *testing.T) {
	data, err := ComparisonPDF("LED panel", "BDT", sampleComparison())
	if err != nil {
		t.Fatalf("ComparisonPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected pdf output")
	}

	empty, err := ComparisonPDF("Nothing", "BDT", nil)
	if err != nil || !bytes.HasPrefix(empty, []byte("%PDF")) {
		t.Fatalf("expected pdf for empty comparison, err=%v", err)
	}
}

func TestQuotationPDF(t *testing.T) {
	q := quotation.Build(pricing.NewCalculator("BDT"), quotation.Input{
		ClientName: "Dhaka Builders",
		Notes:      "Deliver to site office before noon on a working day.",
		Items: []quotation.LineInput{
			{Description: "Copper cable 2.5mm, 100m drum with a very long description that gets trimmed", VendorPrice: 1000, Quantity: 10},
		},
	}, 20, pricing.DefaultBulkDiscounts)

	data, err := QuotationPDF(q)
	if err != nil {
		t.Fatalf("QuotationPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected pdf output")
	}
}

func TestTrim(t *testing.T) {
	if got := trim("short", 10); got != "short" {
		t.Fatalf("trim short=%q", got)
	}
	if got := trim("abcdefghij", 6); got != "abc..." {
		t.Fatalf("trim long=%q", got)
	}
}
