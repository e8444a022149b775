package pricing

import "fmt"

// Position describes where our price sits relative to competitors.
type Position string

const (
	PositionLowest      Position = "lowest"
	PositionCompetitive Position = "competitive"
	PositionPremium     Position = "premium"
)

// CompetitiveAnalysis compares our price against competitor prices.
type CompetitiveAnalysis struct {
	Position Position
	// PriceAdvantage is how far below the competitor average we are, in percent.
	PriceAdvantage float64
	// MarginImpact is the margin gained (in percentage points) by pricing at the
	// competitor average instead of ourPrice.
	MarginImpact    float64
	Recommendations []string
}

// AnalyzeCompetitivePricing positions ourPrice against competitorPrices and suggests a
// next step. vendorCost is used to express the gap as margin.
func AnalyzeCompetitivePricing(ourPrice float64, competitorPrices []float64, vendorCost float64) CompetitiveAnalysis {
	if len(competitorPrices) == 0 {
		return CompetitiveAnalysis{
			Position:        PositionCompetitive,
			Recommendations: []string{"No competitor pricing data available for comparison."},
		}
	}

	sum := 0.0
	lowest := competitorPrices[0]
	for _, p := range competitorPrices {
		sum += p
		if p < lowest {
			lowest = p
		}
	}
	avg := sum / float64(len(competitorPrices))

	position := PositionPremium
	switch {
	case ourPrice <= lowest:
		position = PositionLowest
	case ourPrice <= avg:
		position = PositionCompetitive
	}

	currentMargin := ProfitMargin(vendorCost, ourPrice)
	marginAtAverage := ProfitMargin(vendorCost, avg)

	analysis := CompetitiveAnalysis{
		Position:       position,
		PriceAdvantage: round2((avg - ourPrice) / avg * 100),
		MarginImpact:   round2(marginAtAverage - currentMargin),
	}

	switch position {
	case PositionLowest:
		analysis.Recommendations = []string{
			"Your price is the lowest in the market.",
			fmt.Sprintf("Consider testing a higher margin: pricing at the market average of %.2f would add %.2f margin points.", avg, analysis.MarginImpact),
		}
	case PositionCompetitive:
		analysis.Recommendations = []string{
			"Your price is in line with the market.",
		}
	default:
		analysis.Recommendations = []string{
			fmt.Sprintf("Your price is %.2f%% above the market average.", -analysis.PriceAdvantage),
			"Justify the premium through product quality, delivery speed or service.",
		}
	}

	return analysis
}
