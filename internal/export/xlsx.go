package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/supplydesk/internal/pricing"
)

const comparisonSheet = "Comparison"

var comparisonHeader = []any{
	"Vendor", "Vendor ID", "Price", "Currency", "Selling price", "Margin %",
	"Savings", "Delivery", "Min. qty", "Valid until", "Lowest", "Best value",
}

// ComparisonXLSX writes the comparison rows to a single-sheet workbook.
func ComparisonXLSX(productName string, rows []pricing.VendorComparison) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", comparisonSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellValue(comparisonSheet, "A1", productName); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	if err := f.SetSheetRow(comparisonSheet, "A2", &comparisonHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, fmt.Errorf("resolve cell: %w", err)
		}
		values := []any{
			r.VendorName,
			r.VendorID,
			r.Price,
			r.Currency,
			Money(r.SellingPrice),
			r.ProfitMargin,
			savingsText(r.Savings),
			r.DeliveryTime,
			r.MinimumQuantity,
			r.ValidUntil.Format("2006-01-02"),
			yesNo(r.IsLowest),
			yesNo(r.IsBestValue),
		}
		if err := f.SetSheetRow(comparisonSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(comparisonSheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
