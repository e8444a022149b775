package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/supplydesk/internal/export"
	"github.com/Simplici0/supplydesk/internal/pricing"
	"github.com/Simplici0/supplydesk/internal/quotation"
)

func (s *server) handleQuotationsCreate(w http.ResponseWriter, r *http.Request) {
	var in quotation.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, ok := s.loadSettings(w, r)
	if !ok {
		return
	}
	for _, item := range in.Items {
		if _, err := st.resolveMargin(item.ProfitMargin); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	q := quotation.Build(st.calculator(), in, st.DefaultProfitMargin, pricing.DefaultBulkDiscounts)
	saved, err := s.quotations.Create(r.Context(), q)
	if err != nil {
		log.Printf("create quotation: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save quotation")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *server) handleQuotationsList(w http.ResponseWriter, r *http.Request) {
	list, err := s.quotations.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		log.Printf("list quotations: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load quotations")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) handleQuotationGet(w http.ResponseWriter, r *http.Request) {
	q, ok := s.lookupQuotation(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleQuotationPDF(w http.ResponseWriter, r *http.Request) {
	q, ok := s.lookupQuotation(w, r)
	if !ok {
		return
	}

	data, err := export.QuotationPDF(q)
	if err != nil {
		log.Printf("render quotation %d pdf: %v", q.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to render pdf")
		return
	}
	writeFile(w, "application/pdf", q.Number+".pdf", data)
}

func (s *server) lookupQuotation(w http.ResponseWriter, r *http.Request) (quotation.Quotation, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid quotation id")
		return quotation.Quotation{}, false
	}

	q, err := s.quotations.Get(r.Context(), id)
	if errors.Is(err, quotation.ErrNotFound) {
		writeError(w, http.StatusNotFound, "quotation not found")
		return quotation.Quotation{}, false
	}
	if err != nil {
		log.Printf("get quotation %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load quotation")
		return quotation.Quotation{}, false
	}
	return q, true
}
