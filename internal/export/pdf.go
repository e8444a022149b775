package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Simplici0/supplydesk/internal/pricing"
	"github.com/Simplici0/supplydesk/internal/quotation"
)

const companyName = "Supply Desk"

// QuotationPDF renders q as an A4 quotation.
func QuotationPDF(q quotation.Quotation) ([]byte, error) {
	pdf := newDocument("Quotation " + q.Number)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Quotation")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("No. %s dated %s", q.Number, q.CreatedAt.Format("02.01.2006")))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Client: "+q.ClientName)
	pdf.Ln(6)
	if q.Notes != "" {
		pdf.MultiCell(0, 6, "Notes: "+q.Notes, "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(85, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Disc. %", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range q.Items {
		pdf.CellFormat(85, 6, trim(it.Description, 48), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, Money(it.DiscountPercent), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, Money(it.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, Money(it.LineTotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total: %s %s", Money(q.Totals.Total), q.Currency), "T", 1, "R", false, 0, "")

	footer(pdf)
	return output(pdf)
}

// ComparisonPDF renders a vendor comparison table for one product.
func ComparisonPDF(productName, currency string, rows []pricing.VendorComparison) ([]byte, error) {
	pdf := newDocument("Vendor comparison " + productName)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Vendor comparison")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Product: %s (%s)", productName, currency))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, "Vendor", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Selling", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Savings", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Delivery", "B", 0, "L", false, 0, "")
	pdf.CellFormat(12, 7, "MOQ", "B", 0, "R", false, 0, "")
	pdf.CellFormat(23, 7, "Flags", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(rows) == 0 {
		pdf.Cell(0, 6, "No vendor quotes recorded.")
		pdf.Ln(6)
	}
	for _, r := range rows {
		pdf.CellFormat(55, 6, trim(r.VendorName, 30), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, Money(r.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, Money(r.SellingPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, savingsText(r.Savings), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, trim(r.DeliveryTime, 14), "", 0, "L", false, 0, "")
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", r.MinimumQuantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(23, 6, flags(r), "", 1, "L", false, 0, "")
	}

	footer(pdf)
	return output(pdf)
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator(companyName, true)
	pdf.AddPage()
	return pdf
}

func footer(pdf *gofpdf.Fpdf) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, companyName)
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)))
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func savingsText(savings *float64) string {
	if savings == nil {
		return "-"
	}
	return Money(*savings)
}

func flags(r pricing.VendorComparison) string {
	switch {
	case r.IsLowest && r.IsBestValue:
		return "lowest, best"
	case r.IsLowest:
		return "lowest"
	case r.IsBestValue:
		return "best value"
	}
	return ""
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
