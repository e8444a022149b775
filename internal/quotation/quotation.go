// Package quotation prices client quotations line by line and stores them as snapshots.
package quotation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

// ErrNotFound is returned when a quotation does not exist.
var ErrNotFound = errors.New("quotation not found")

// LineInput is one requested line. A nil ProfitMargin uses the default margin.
type LineInput struct {
	Description  string   `json:"description"`
	VendorPrice  float64  `json:"vendor_price"`
	Quantity     int      `json:"quantity"`
	ProfitMargin *float64 `json:"profit_margin,omitempty"`
}

// Input is a quotation request.
type Input struct {
	ClientName string      `json:"client_name"`
	Notes      string      `json:"notes"`
	Items      []LineInput `json:"items"`
}

// Item is a priced quotation line.
type Item struct {
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	VendorPrice     float64 `json:"vendor_price"`
	ProfitMargin    float64 `json:"profit_margin"`
	DiscountPercent float64 `json:"discount_percent"`
	UnitPrice       float64 `json:"unit_price"`
	LineTotal       float64 `json:"line_total"`
}

// Totals are stored with the quotation and never recomputed.
type Totals struct {
	Cost          float64 `json:"cost"`
	Total         float64 `json:"total"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
}

// Quotation is a priced offer to a client.
type Quotation struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	CreatedAt  time.Time `json:"created_at"`
	ClientName string    `json:"client_name"`
	Notes      string    `json:"notes"`
	Currency   string    `json:"currency"`
	Items      []Item    `json:"items"`
	Totals     Totals    `json:"totals"`
}

// Validate checks the request before pricing. Margin sign policy is left to the caller.
func (in Input) Validate() error {
	if strings.TrimSpace(in.ClientName) == "" {
		return fmt.Errorf("client_name is required")
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("items must not be empty")
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" {
			return fmt.Errorf("items[%d].description is required", i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("items[%d].quantity must be greater than 0", i)
		}
		if it.VendorPrice <= 0 {
			return fmt.Errorf("items[%d].vendor_price must be greater than 0", i)
		}
	}
	return nil
}

// Build prices every line with the bulk tiers and the default margin where the line has
// none, then totals the quotation with decimal arithmetic.
func Build(calc pricing.Calculator, in Input, defaultMargin float64, tiers []pricing.BulkTier) Quotation {
	q := Quotation{
		Number:     newNumber(),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		ClientName: strings.TrimSpace(in.ClientName),
		Notes:      strings.TrimSpace(in.Notes),
		Currency:   calc.Currency,
		Items:      make([]Item, 0, len(in.Items)),
	}

	cost := decimal.Zero
	total := decimal.Zero
	for _, line := range in.Items {
		margin := defaultMargin
		if line.ProfitMargin != nil {
			margin = *line.ProfitMargin
		}

		discount := 0.0
		if tier, ok := pricing.ApplicableTier(line.Quantity, tiers); ok {
			discount = tier.DiscountPercent
		}
		priced := calc.BulkPricing(line.VendorPrice, line.Quantity, margin, tiers)

		qty := decimal.NewFromInt(int64(line.Quantity))
		lineTotal := decimal.NewFromFloat(priced.SellingPrice).Mul(qty).Round(2)
		cost = cost.Add(decimal.NewFromFloat(line.VendorPrice).Mul(qty))
		total = total.Add(lineTotal)

		q.Items = append(q.Items, Item{
			Description:     strings.TrimSpace(line.Description),
			Quantity:        line.Quantity,
			VendorPrice:     line.VendorPrice,
			ProfitMargin:    margin,
			DiscountPercent: discount,
			UnitPrice:       priced.SellingPrice,
			LineTotal:       lineTotal.InexactFloat64(),
		})
	}

	q.Totals = Totals{
		Cost:   cost.Round(2).InexactFloat64(),
		Total:  total.InexactFloat64(),
		Profit: total.Sub(cost).Round(2).InexactFloat64(),
	}
	q.Totals.MarginPercent = pricing.ProfitMargin(q.Totals.Cost, q.Totals.Total)

	return q
}

func newNumber() string {
	id := uuid.New()
	return "QT-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
