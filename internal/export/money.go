// Package export renders quotations and vendor comparisons as PDF and XLSX documents.
package export

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money formats v with two decimals. Values that cannot be priced render as "n/a".
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
