package pricing

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

const defaultDeliveryDays = 30.0

var (
	deliveryRangePattern = regexp.MustCompile(`(?i)(\d+)(?:[-–](\d+))?\s*days?`)
	firstNumberPattern   = regexp.MustCompile(`\d+`)
)

// VendorQuote is one vendor's offer for a product.
type VendorQuote struct {
	VendorID        string
	VendorName      string
	Price           float64
	Currency        string
	DeliveryTime    string
	MinimumQuantity int
	ValidUntil      time.Time
}

// VendorComparison is a VendorQuote priced with a shared margin and ranked against the
// other quotes of the same comparison.
type VendorComparison struct {
	VendorID        string
	VendorName      string
	Price           float64
	Currency        string
	DeliveryTime    string
	MinimumQuantity int
	ValidUntil      time.Time
	ProfitMargin    float64
	SellingPrice    float64
	// Savings is nil for the lowest quote and price minus the lowest price otherwise.
	Savings     *float64
	IsLowest    bool
	IsBestValue bool
}

// CompareVendorPrices prices every quote with the same margin, flags the lowest and the
// best value quote and returns the comparisons sorted by ascending price.
//
// Ties on the lowest price and on the best value score go to the earliest quote in input
// order.
func (c Calculator) CompareVendorPrices(quotes []VendorQuote, profitMarginPercent float64) []VendorComparison {
	if len(quotes) == 0 {
		return []VendorComparison{}
	}

	lowestIdx := 0
	for i := 1; i < len(quotes); i++ {
		if quotes[i].Price < quotes[lowestIdx].Price {
			lowestIdx = i
		}
	}
	lowestPrice := quotes[lowestIdx].Price

	bestIdx := 0
	bestScore := ValueScore(quotes[0])
	for i := 1; i < len(quotes); i++ {
		if score := ValueScore(quotes[i]); score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	comparisons := make([]VendorComparison, len(quotes))
	for i, q := range quotes {
		priced := c.SellingPrice(q.Price, profitMarginPercent)
		cmp := VendorComparison{
			VendorID:        q.VendorID,
			VendorName:      q.VendorName,
			Price:           q.Price,
			Currency:        q.Currency,
			DeliveryTime:    q.DeliveryTime,
			MinimumQuantity: q.MinimumQuantity,
			ValidUntil:      q.ValidUntil,
			ProfitMargin:    profitMarginPercent,
			SellingPrice:    priced.SellingPrice,
			IsLowest:        i == lowestIdx,
			IsBestValue:     i == bestIdx,
		}
		if i != lowestIdx {
			savings := q.Price - lowestPrice
			cmp.Savings = &savings
		}
		comparisons[i] = cmp
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].Price < comparisons[j].Price
	})

	return comparisons
}

// ValueScore weighs price first, then delivery speed, then order flexibility.
func ValueScore(q VendorQuote) float64 {
	priceScore := (1 / q.Price) * 1_000_000
	deliveryScore := (1 / ParseDeliveryDays(q.DeliveryTime)) * 100
	quantityScore := (1 / float64(q.MinimumQuantity)) * 10
	return priceScore + deliveryScore + quantityScore
}

// ParseDeliveryDays estimates a day count from free text such as "7-10 days" (8.5),
// "15 days" (15) or "ships in 3 weeks" (3). Text without digits yields 30.
// A range needs the dash directly between the numbers: "7 - 10 days" reads as 10.
func ParseDeliveryDays(text string) float64 {
	if m := deliveryRangePattern.FindStringSubmatch(text); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		if m[2] == "" {
			return low
		}
		high, _ := strconv.ParseFloat(m[2], 64)
		return (low + high) / 2
	}

	if n := firstNumberPattern.FindString(text); n != "" {
		days, _ := strconv.ParseFloat(n, 64)
		return days
	}

	return defaultDeliveryDays
}
