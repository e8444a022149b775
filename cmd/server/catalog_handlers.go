package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/supplydesk/internal/catalog"
	"github.com/Simplici0/supplydesk/internal/export"
	"github.com/Simplici0/supplydesk/internal/pricing"
)

type vendorRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (s *server) handleVendorsList(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.catalog.ListVendors(r.Context())
	if err != nil {
		log.Printf("list vendors: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load vendors")
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

func (s *server) handleVendorsCreate(w http.ResponseWriter, r *http.Request) {
	var req vendorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	vendor, err := s.catalog.CreateVendor(r.Context(), req.Name, req.Contact)
	if err != nil {
		log.Printf("create vendor: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save vendor")
		return
	}
	writeJSON(w, http.StatusCreated, vendor)
}

type productRequest struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
	Unit string `json:"unit"`
}

func (s *server) handleProductsList(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		log.Printf("list products: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *server) handleProductsCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	product, err := s.catalog.CreateProduct(r.Context(), req.Name, req.SKU, req.Unit)
	if err != nil {
		log.Printf("create product: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save product")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (s *server) handleProductPriceCreate(w http.ResponseWriter, r *http.Request) {
	product, ok := s.lookupProduct(w, r)
	if !ok {
		return
	}

	var in quoteInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.validate("quote"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.ValidUntil.IsZero() {
		writeError(w, http.StatusBadRequest, "valid_until is required")
		return
	}

	vendor, err := s.catalog.GetVendor(r.Context(), strings.TrimSpace(in.VendorID))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "vendor_id does not match a vendor")
		return
	}
	if err != nil {
		log.Printf("get vendor %s: %v", in.VendorID, err)
		writeError(w, http.StatusInternalServerError, "failed to load vendor")
		return
	}

	q := in.toQuote(s.currency)
	q.VendorID = vendor.ID
	q.VendorName = vendor.Name
	if err := s.quotes.AddQuote(r.Context(), product.ID, q); err != nil {
		log.Printf("add quote for product %s: %v", product.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to save vendor price")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleProductComparison(w http.ResponseWriter, r *http.Request) {
	product, st, rows, ok := s.productComparison(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product":     product,
		"currency":    st.Currency,
		"comparisons": newComparisonResponses(rows),
	})
}

func (s *server) handleProductComparisonXLSX(w http.ResponseWriter, r *http.Request) {
	product, _, rows, ok := s.productComparison(w, r)
	if !ok {
		return
	}

	data, err := export.ComparisonXLSX(product.Name, rows)
	if err != nil {
		log.Printf("render comparison xlsx: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to render spreadsheet")
		return
	}
	writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", product.ID+"-comparison.xlsx", data)
}

func (s *server) handleProductComparisonPDF(w http.ResponseWriter, r *http.Request) {
	product, st, rows, ok := s.productComparison(w, r)
	if !ok {
		return
	}

	data, err := export.ComparisonPDF(product.Name, st.Currency, rows)
	if err != nil {
		log.Printf("render comparison pdf: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to render pdf")
		return
	}
	writeFile(w, "application/pdf", product.ID+"-comparison.pdf", data)
}

// productComparison prices every stored quote for the product at ?margin= or the default margin.
func (s *server) productComparison(w http.ResponseWriter, r *http.Request) (catalog.Product, settings, []pricing.VendorComparison, bool) {
	product, ok := s.lookupProduct(w, r)
	if !ok {
		return catalog.Product{}, settings{}, nil, false
	}

	st, ok := s.loadSettings(w, r)
	if !ok {
		return catalog.Product{}, settings{}, nil, false
	}

	var requested *float64
	if raw := r.URL.Query().Get("margin"); raw != "" {
		value, err := parseFloatParam(raw, "margin")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return catalog.Product{}, settings{}, nil, false
		}
		requested = &value
	}
	margin, err := st.resolveMargin(requested)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return catalog.Product{}, settings{}, nil, false
	}

	quotes, err := s.quotes.ProductQuotes(r.Context(), product.ID)
	if err != nil {
		log.Printf("load quotes for product %s: %v", product.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load vendor prices")
		return catalog.Product{}, settings{}, nil, false
	}

	return product, st, st.calculator().CompareVendorPrices(quotes, margin), true
}

func (s *server) lookupProduct(w http.ResponseWriter, r *http.Request) (catalog.Product, bool) {
	product, err := s.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return catalog.Product{}, false
	}
	if err != nil {
		log.Printf("get product: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return catalog.Product{}, false
	}
	return product, true
}
