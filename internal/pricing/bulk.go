package pricing

// BulkTier grants DiscountPercent off the base price once MinQuantity units are ordered.
type BulkTier struct {
	MinQuantity     int
	DiscountPercent float64
}

// DefaultBulkDiscounts is the tier table used when a caller has none of its own.
var DefaultBulkDiscounts = []BulkTier{
	{MinQuantity: 10, DiscountPercent: 2},
	{MinQuantity: 25, DiscountPercent: 5},
	{MinQuantity: 50, DiscountPercent: 8},
	{MinQuantity: 100, DiscountPercent: 12},
	{MinQuantity: 500, DiscountPercent: 15},
}

// ApplicableTier returns the tier with the highest discount whose minimum quantity is met.
// The earliest tier wins a tie on discount. ok is false when no tier applies.
// A nil table means DefaultBulkDiscounts; an empty non-nil table never applies.
func ApplicableTier(quantity int, tiers []BulkTier) (tier BulkTier, ok bool) {
	if tiers == nil {
		tiers = DefaultBulkDiscounts
	}
	for _, t := range tiers {
		if quantity < t.MinQuantity {
			continue
		}
		if !ok || t.DiscountPercent > tier.DiscountPercent {
			tier = t
			ok = true
		}
	}
	return tier, ok
}

// BulkPricing discounts basePrice by the applicable tier and applies the margin on the
// discounted price. The result's VendorPrice is the discounted unit price.
// Nil tiers use DefaultBulkDiscounts; pass an empty slice for no discount.
func (c Calculator) BulkPricing(basePrice float64, quantity int, profitMarginPercent float64, tiers []BulkTier) Result {
	discountPercent := 0.0
	if tier, ok := ApplicableTier(quantity, tiers); ok {
		discountPercent = tier.DiscountPercent
	}

	discountedPrice := basePrice * (1 - discountPercent/100.0)
	return c.SellingPrice(discountedPrice, profitMarginPercent)
}
