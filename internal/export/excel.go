package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/roomfit/roomfit/internal/model"
)

// ExportQuoteXLSX writes the quote as a single-sheet workbook: one row per
// furniture line plus subtotal, service fee, and total rows.
func ExportQuoteXLSX(path string, plan model.Plan, quote model.Quote) error {
	if len(quote.Lines) == 0 {
		return fmt.Errorf("quote has no lines to export")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := [][]interface{}{
		{fmt.Sprintf("%s — %s layout", plan.Name, quote.Pattern)},
		{},
		{"Furniture", "Qty", "Seats", "Unit price", "Line total"},
	}
	for _, line := range quote.Lines {
		rows = append(rows, []interface{}{
			line.Name, line.Quantity, line.Seats, line.UnitPrice, line.LineTotal,
		})
	}
	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"", "", "", "Subtotal", quote.Subtotal})
	if quote.ServiceFeePct > 0 {
		rows = append(rows, []interface{}{
			"", "", "", fmt.Sprintf("Service fee (%.1f%%)", quote.ServiceFeePct), quote.ServiceFee,
		})
	}
	rows = append(rows, []interface{}{"", "", "", "Total", quote.Total})

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("build cell reference: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 34); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "E", 12); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
