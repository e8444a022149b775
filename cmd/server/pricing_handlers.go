package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

type resultResponse struct {
	VendorPrice      number `json:"vendor_price"`
	ProfitMargin     number `json:"profit_margin"`
	ProfitAmount     number `json:"profit_amount"`
	SellingPrice     number `json:"selling_price"`
	MarkupPercentage number `json:"markup_percentage"`
	Currency         string `json:"currency"`
}

func newResultResponse(r pricing.Result) resultResponse {
	return resultResponse{
		VendorPrice:      number(r.VendorPrice),
		ProfitMargin:     number(r.ProfitMargin),
		ProfitAmount:     number(r.ProfitAmount),
		SellingPrice:     number(r.SellingPrice),
		MarkupPercentage: number(r.MarkupPercentage),
		Currency:         r.Currency,
	}
}

type comparisonResponse struct {
	VendorID        string    `json:"vendor_id"`
	VendorName      string    `json:"vendor_name"`
	Price           number    `json:"price"`
	Currency        string    `json:"currency"`
	DeliveryTime    string    `json:"delivery_time"`
	MinimumQuantity int       `json:"minimum_quantity"`
	ValidUntil      time.Time `json:"valid_until"`
	ProfitMargin    number    `json:"profit_margin"`
	SellingPrice    number    `json:"selling_price"`
	Savings         *number   `json:"savings"`
	IsLowest        bool      `json:"is_lowest"`
	IsBestValue     bool      `json:"is_best_value"`
}

func newComparisonResponses(rows []pricing.VendorComparison) []comparisonResponse {
	out := make([]comparisonResponse, 0, len(rows))
	for _, c := range rows {
		item := comparisonResponse{
			VendorID:        c.VendorID,
			VendorName:      c.VendorName,
			Price:           number(c.Price),
			Currency:        c.Currency,
			DeliveryTime:    c.DeliveryTime,
			MinimumQuantity: c.MinimumQuantity,
			ValidUntil:      c.ValidUntil,
			ProfitMargin:    number(c.ProfitMargin),
			SellingPrice:    number(c.SellingPrice),
			IsLowest:        c.IsLowest,
			IsBestValue:     c.IsBestValue,
		}
		if c.Savings != nil {
			savings := number(*c.Savings)
			item.Savings = &savings
		}
		out = append(out, item)
	}
	return out
}

type quoteInput struct {
	VendorID        string    `json:"vendor_id"`
	VendorName      string    `json:"vendor_name"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	DeliveryTime    string    `json:"delivery_time"`
	MinimumQuantity int       `json:"minimum_quantity"`
	ValidUntil      dateValue `json:"valid_until"`
}

func (in quoteInput) validate(field string) error {
	if err := requirePositive(in.Price, field+".price"); err != nil {
		return err
	}
	if in.MinimumQuantity <= 0 {
		return fmt.Errorf("%s.minimum_quantity must be greater than 0", field)
	}
	return nil
}

func (in quoteInput) toQuote(currency string) pricing.VendorQuote {
	q := pricing.VendorQuote{
		VendorID:        strings.TrimSpace(in.VendorID),
		VendorName:      strings.TrimSpace(in.VendorName),
		Price:           in.Price,
		Currency:        strings.ToUpper(strings.TrimSpace(in.Currency)),
		DeliveryTime:    strings.TrimSpace(in.DeliveryTime),
		MinimumQuantity: in.MinimumQuantity,
		ValidUntil:      in.ValidUntil.Time,
	}
	if q.Currency == "" {
		q.Currency = currency
	}
	return q
}

type tierInput struct {
	MinQuantity     int     `json:"min_quantity"`
	DiscountPercent float64 `json:"discount_percent"`
}

type sellingPriceRequest struct {
	VendorPrice  float64  `json:"vendor_price"`
	ProfitMargin *float64 `json:"profit_margin"`
}

type sellingPriceResponse struct {
	resultResponse
	MinimumMargin number `json:"minimum_margin"`
	BreakEven     number `json:"break_even"`
}

func (s *server) handleSellingPrice(w http.ResponseWriter, r *http.Request) {
	var req sellingPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePositive(req.VendorPrice, "vendor_price"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, ok := s.loadSettings(w, r)
	if !ok {
		return
	}
	margin, err := st.resolveMargin(req.ProfitMargin)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := st.calculator().SellingPrice(req.VendorPrice, margin)
	writeJSON(w, http.StatusOK, sellingPriceResponse{
		resultResponse: newResultResponse(result),
		MinimumMargin:  number(st.MinimumMargin),
		BreakEven:      number(pricing.BreakEven(req.VendorPrice, st.MinimumMargin)),
	})
}

type marginRequest struct {
	VendorPrice  float64 `json:"vendor_price"`
	SellingPrice float64 `json:"selling_price"`
}

func (s *server) handleMargin(w http.ResponseWriter, r *http.Request) {
	var req marginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePositive(req.SellingPrice, "selling_price"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]number{
		"profit_margin": number(pricing.ProfitMargin(req.VendorPrice, req.SellingPrice)),
	})
}

type compareRequest struct {
	Quotes       []quoteInput `json:"quotes"`
	ProfitMargin *float64     `json:"profit_margin"`
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, ok := s.loadSettings(w, r)
	if !ok {
		return
	}
	margin, err := st.resolveMargin(req.ProfitMargin)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quotes := make([]pricing.VendorQuote, 0, len(req.Quotes))
	for i, in := range req.Quotes {
		if err := in.validate(fmt.Sprintf("quotes[%d]", i)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		quotes = append(quotes, in.toQuote(st.Currency))
	}

	rows := st.calculator().CompareVendorPrices(quotes, margin)
	writeJSON(w, http.StatusOK, newComparisonResponses(rows))
}

type bulkRequest struct {
	BasePrice    float64     `json:"base_price"`
	Quantity     int         `json:"quantity"`
	ProfitMargin *float64    `json:"profit_margin"`
	Tiers        []tierInput `json:"tiers"`
}

type bulkResponse struct {
	resultResponse
	Quantity     int        `json:"quantity"`
	AppliedTier  *tierInput `json:"applied_tier"`
	SubtotalCost number     `json:"subtotal_cost"`
	Total        number     `json:"total"`
}

func (s *server) handleBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePositive(req.BasePrice, "base_price"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be greater than 0")
		return
	}

	tiers := pricing.DefaultBulkDiscounts
	if req.Tiers != nil {
		tiers = make([]pricing.BulkTier, 0, len(req.Tiers))
		for i, t := range req.Tiers {
			if t.MinQuantity <= 0 {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("tiers[%d].min_quantity must be greater than 0", i))
				return
			}
			if err := checkPercent(t.DiscountPercent, fmt.Sprintf("tiers[%d].discount_percent", i)); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			tiers = append(tiers, pricing.BulkTier{MinQuantity: t.MinQuantity, DiscountPercent: t.DiscountPercent})
		}
	}

	st, ok := s.loadSettings(w, r)
	if !ok {
		return
	}
	margin, err := st.resolveMargin(req.ProfitMargin)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := st.calculator().BulkPricing(req.BasePrice, req.Quantity, margin, tiers)
	resp := bulkResponse{
		resultResponse: newResultResponse(result),
		Quantity:       req.Quantity,
		SubtotalCost:   number(result.VendorPrice * float64(req.Quantity)),
		Total:          number(result.SellingPrice * float64(req.Quantity)),
	}
	if tier, ok := pricing.ApplicableTier(req.Quantity, tiers); ok {
		resp.AppliedTier = &tierInput{MinQuantity: tier.MinQuantity, DiscountPercent: tier.DiscountPercent}
	}
	writeJSON(w, http.StatusOK, resp)
}

type competitiveRequest struct {
	OurPrice         float64     `json:"our_price"`
	CompetitorPrices []flexFloat `json:"competitor_prices"`
	VendorCost       float64     `json:"vendor_cost"`
}

type competitiveResponse struct {
	Position        pricing.Position `json:"position"`
	PriceAdvantage  number           `json:"price_advantage"`
	MarginImpact    number           `json:"margin_impact"`
	Recommendations []string         `json:"recommendations"`
}

func (s *server) handleCompetitive(w http.ResponseWriter, r *http.Request) {
	var req competitiveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePositive(req.OurPrice, "our_price"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := requirePositive(req.VendorCost, "vendor_cost"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prices := make([]float64, 0, len(req.CompetitorPrices))
	for i, p := range req.CompetitorPrices {
		if p.Blank {
			continue
		}
		if err := requirePositive(p.Value, fmt.Sprintf("competitor_prices[%d]", i)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		prices = append(prices, p.Value)
	}

	analysis := pricing.AnalyzeCompetitivePricing(req.OurPrice, prices, req.VendorCost)
	writeJSON(w, http.StatusOK, competitiveResponse{
		Position:        analysis.Position,
		PriceAdvantage:  number(analysis.PriceAdvantage),
		MarginImpact:    number(analysis.MarginImpact),
		Recommendations: analysis.Recommendations,
	})
}

func (s *server) loadSettings(w http.ResponseWriter, r *http.Request) (settings, bool) {
	st, err := s.getSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return settings{}, false
	}
	return st, true
}
