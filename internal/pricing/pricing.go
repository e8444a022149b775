// Package pricing implements margin and markup arithmetic, vendor price comparison,
// bulk discount tiers and competitive price positioning.
//
// Every function is pure: inputs are never mutated and nothing is stored between calls.
// Invalid numeric input is not clamped; NaN flows through to the result so callers can
// detect it before display.
package pricing

import "math"

// DefaultCurrency is stamped on results when the caller does not configure one.
const DefaultCurrency = "BDT"

// Result is the selling price breakdown for a single vendor cost.
type Result struct {
	VendorPrice      float64
	ProfitMargin     float64
	ProfitAmount     float64
	SellingPrice     float64
	MarkupPercentage float64
	Currency         string
}

// Calculator holds caller-supplied settings. The zero value does not round prices and
// stamps an empty currency; use NewCalculator for the usual defaults.
type Calculator struct {
	Currency    string
	RoundPrices bool
}

// NewCalculator returns a Calculator that rounds prices to two decimals.
func NewCalculator(currency string) Calculator {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Calculator{Currency: currency, RoundPrices: true}
}

// SellingPrice applies profitMarginPercent on top of vendorPrice.
// Markup is undefined (NaN or Inf) when vendorPrice is zero.
func (c Calculator) SellingPrice(vendorPrice, profitMarginPercent float64) Result {
	profitAmount := vendorPrice * profitMarginPercent / 100.0
	sellingPrice := vendorPrice + profitAmount
	markup := profitAmount / vendorPrice * 100.0

	if c.RoundPrices {
		profitAmount = round2(profitAmount)
		sellingPrice = round2(sellingPrice)
	}

	return Result{
		VendorPrice:      vendorPrice,
		ProfitMargin:     profitMarginPercent,
		ProfitAmount:     profitAmount,
		SellingPrice:     sellingPrice,
		MarkupPercentage: round2(markup),
		Currency:         c.Currency,
	}
}

// ProfitMargin returns the margin percentage that turns vendorPrice into sellingPrice.
// A non-positive vendor price yields 0.
func ProfitMargin(vendorPrice, sellingPrice float64) float64 {
	if vendorPrice <= 0 {
		return 0
	}
	return round2((sellingPrice - vendorPrice) / vendorPrice * 100.0)
}

// BreakEven returns the lowest price that still earns minimumMarginPercent. Not rounded.
func BreakEven(vendorPrice, minimumMarginPercent float64) float64 {
	return vendorPrice * (1 + minimumMarginPercent/100.0)
}

// round2 rounds half up to two decimals, matching Math.round(x*100)/100.
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
