// Package export renders placement results and quotes to printable and
// spreadsheet formats.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/roomfit/roomfit/internal/model"
)

// rgb is a display color for a rendered table footprint.
type rgb struct {
	R, G, B int
}

// fallbackColors is cycled for catalog entries without a usable hex color.
var fallbackColors = []rgb{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 18.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a two-page document for one layout: a floor-plan page
// with the room outline, exclusion zones, and placed furniture, followed by
// the line-itemized quote. chairDepthMM controls how the chair strip of each
// footprint is rendered.
func ExportPDF(path string, plan model.Plan, layout model.LayoutResult, quote model.Quote, chairDepthMM float64) error {
	if len(plan.Room) < 3 {
		return fmt.Errorf("plan has no room outline to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, plan, layout, chairDepthMM)

	pdf.AddPage()
	renderQuotePage(pdf, plan, layout, quote)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the room, its holes, and the placed furniture scaled
// to fit the page.
func renderPlanPage(pdf *fpdf.Fpdf, plan model.Plan, layout model.LayoutResult, chairDepthMM float64) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s — %s layout", plan.Name, layout.Pattern)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tables: %d | Seats: %d | Aisle gap: %.0f mm",
		len(layout.Items), layout.TotalSeats(), layout.Pattern.AisleGapMM())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	min, max := plan.Room.BoundingBox()
	roomW := max.X - min.X
	roomH := max.Y - min.Y
	if roomW <= 0 || roomH <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	fit := math.Min(drawWidth/roomW, drawHeight/roomH)

	offsetX := marginLeft + (drawWidth-roomW*fit)/2
	offsetY := drawAreaTop
	toPage := func(p model.Point) (float64, float64) {
		return offsetX + (p.X-min.X)*fit, offsetY + (p.Y-min.Y)*fit
	}

	// Room outline
	pdf.SetFillColor(250, 247, 240)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Polygon(toPagePoints(plan.Room, toPage), "FD")

	// Exclusion zones
	for _, hole := range plan.Holes {
		if len(hole) < 3 {
			continue
		}
		pdf.SetFillColor(255, 205, 205)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Polygon(toPagePoints(hole, toPage), "FD")

		hmin, hmax := hole.BoundingBox()
		hx, hy := toPage(hmin)
		drawHatch(pdf, hx, hy, (hmax.X-hmin.X)*fit, (hmax.Y-hmin.Y)*fit)
	}

	// Placed furniture: table rectangle over a gray chair strip
	for i, it := range layout.Items {
		col := colorFor(it.Furniture, i)
		w := plan.Scale.ToPixels(it.Furniture.TableWidth) * fit
		tableH := plan.Scale.ToPixels(it.Furniture.TableDepth) * fit
		chairH := plan.Scale.ToPixels(chairDepthMM) * fit
		px, py := toPage(model.Point{X: it.X, Y: it.Y})

		pdf.SetFillColor(225, 225, 225)
		pdf.SetDrawColor(150, 150, 150)
		pdf.SetLineWidth(0.15)
		pdf.Rect(px, py+tableH, w, chairH, "FD")

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, w, tableH, "FD")

		if w > 10 && tableH > 5 {
			pdf.SetFont("Helvetica", "", 6)
			pdf.SetTextColor(0, 0, 0)
			label := strconv.Itoa(i + 1)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(px+(w-labelW)/2, py+tableH/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawLayoutLegend(pdf, layout, offsetY+roomH*fit+4)
	pdf.SetTextColor(0, 0, 0)
}

// toPagePoints maps polygon vertices into fpdf page coordinates.
func toPagePoints(poly model.Polygon, toPage func(model.Point) (float64, float64)) []fpdf.PointType {
	pts := make([]fpdf.PointType, len(poly))
	for i, p := range poly {
		x, y := toPage(p)
		pts[i] = fpdf.PointType{X: x, Y: y}
	}
	return pts
}

// drawHatch draws diagonal lines across a rectangle to mark no-placement
// zones.
func drawHatch(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawLayoutLegend renders a compact per-furniture legend below the plan.
func drawLayoutLegend(pdf *fpdf.Fpdf, layout model.LayoutResult, startY float64) {
	if len(layout.Items) == 0 {
		return
	}

	type legendEntry struct {
		spec  model.FurnitureSpec
		count int
		color rgb
	}
	var entries []legendEntry
	index := make(map[string]int)
	for i, it := range layout.Items {
		if j, ok := index[it.Furniture.ID]; ok {
			entries[j].count++
			continue
		}
		index[it.Furniture.ID] = len(entries)
		entries = append(entries, legendEntry{spec: it.Furniture, count: 1, color: colorFor(it.Furniture, i)})
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	xPos := marginLeft
	for _, e := range entries {
		label := fmt.Sprintf("%s ×%d (%.0f×%.0f mm, %d seats)",
			e.spec.Name, e.count, e.spec.TableWidth, e.spec.TableDepth, e.spec.Seats)
		labelW := pdf.GetStringWidth(label) + 6

		pdf.SetFillColor(e.color.R, e.color.G, e.color.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 4

		if xPos > pageWidth-marginRight-40 {
			xPos = marginLeft
			startY += 5
		}
	}
}

// renderQuotePage draws the line-itemized quote table.
func renderQuotePage(pdf *fpdf.Fpdf, plan model.Plan, layout model.LayoutResult, quote model.Quote) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Furniture Quote", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 6, fmt.Sprintf("Plan: %s — %s layout, %d tables, %d seats",
		plan.Name, layout.Pattern, quote.TotalItems, quote.TotalSeats), "", 0, "L", false, 0, "")
	y += 10

	colWidths := []float64{90, 25, 25, 35, 35}
	headers := []string{"Furniture", "Qty", "Seats", "Unit price", "Line total"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, line := range quote.Lines {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			line.Name,
			strconv.Itoa(line.Quantity),
			strconv.Itoa(line.Seats),
			fmt.Sprintf("%.2f", line.UnitPrice),
			fmt.Sprintf("%.2f", line.LineTotal),
		}
		xPos = marginLeft
		for j, cell := range row {
			align := "L"
			if j > 0 {
				align = "R"
			}
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, align, true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 4
	totals := []struct {
		label string
		value float64
		bold  bool
	}{
		{"Subtotal", quote.Subtotal, false},
		{fmt.Sprintf("Service fee (%.1f%%)", quote.ServiceFeePct), quote.ServiceFee, false},
		{"Total", quote.Total, true},
	}
	for _, tl := range totals {
		if strings.HasPrefix(tl.label, "Service") && quote.ServiceFeePct == 0 {
			continue
		}
		style := ""
		if tl.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetXY(marginLeft+colWidths[0]+colWidths[1]+colWidths[2], y)
		pdf.CellFormat(colWidths[3], 6, tl.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 6, fmt.Sprintf("%.2f", tl.value), "", 0, "R", false, 0, "")
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RoomFit — Banquet Floor Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// colorFor parses the entry's hex color, falling back to a palette keyed by
// the item index.
func colorFor(spec model.FurnitureSpec, idx int) rgb {
	if c, ok := parseHexColor(spec.Color); ok {
		return c
	}
	return fallbackColors[idx%len(fallbackColors)]
}

func parseHexColor(s string) (rgb, bool) {
	if len(s) != 7 || s[0] != '#' {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}
