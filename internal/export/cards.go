package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/roomfit/roomfit/internal/model"
)

// CardInfo is the data encoded into each table card's QR code. The setup
// crew scans it to find where a table goes on the floor.
type CardInfo struct {
	TableNumber int     `json:"table"`
	Furniture   string  `json:"furniture"`
	Seats       int     `json:"seats"`
	XMM         float64 `json:"x_mm"`
	YMM         float64 `json:"y_mm"`
}

// Card layout constants for Avery 5160-compatible sheets (3 columns, 10 rows
// per page on US Letter).
const (
	cardPageWidth  = 215.9
	cardPageHeight = 279.4
	cardMarginTop  = 12.7
	cardMarginLeft = 4.8
	cardWidth      = 66.7
	cardHeight     = 25.4
	cardCols       = 3
	cardRows       = 10
	cardsPerPage   = cardCols * cardRows
	cardQRSize     = 20.0
	cardPadding    = 2.0
)

// ExportPlaceCards generates a PDF of QR-coded setup cards, one per placed
// table. Positions are encoded in millimeters from the room's top-left
// corner so the crew works in tape-measure units.
func ExportPlaceCards(path string, plan model.Plan, layout model.LayoutResult) error {
	if len(layout.Items) == 0 {
		return fmt.Errorf("no placed tables to generate cards for")
	}
	if !plan.Scale.Valid() {
		return fmt.Errorf("plan scale %v is not usable", float64(plan.Scale))
	}

	min, _ := plan.Room.BoundingBox()
	cards := make([]CardInfo, len(layout.Items))
	for i, it := range layout.Items {
		cards[i] = CardInfo{
			TableNumber: i + 1,
			Furniture:   it.Furniture.Name,
			Seats:       it.Furniture.Seats,
			XMM:         plan.Scale.ToMillimeters(it.X - min.X),
			YMM:         plan.Scale.ToMillimeters(it.Y - min.Y),
		}
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % cardsPerPage
		x := cardMarginLeft + float64(pos%cardCols)*cardWidth
		y := cardMarginTop + float64(pos/cardCols)*cardHeight

		if err := renderCard(pdf, x, y, card); err != nil {
			return fmt.Errorf("render card for table %d: %w", card.TableNumber, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderCard draws a single setup card at the given position.
func renderCard(pdf *fpdf.Fpdf, x, y float64, card CardInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	payload, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("marshal card info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_table_%d", card.TableNumber)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))

	qrX := x + cardWidth - cardQRSize - cardPadding
	qrY := y + (cardHeight-cardQRSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, cardQRSize, cardQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + cardPadding
	textW := cardWidth - cardQRSize - 3*cardPadding

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+cardPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("Table %d", card.TableNumber), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(textX, y+cardPadding+6)
	pdf.CellFormat(textW, 4, card.Furniture, "", 0, "L", false, 0, "")

	pdf.SetXY(textX, y+cardPadding+10)
	pdf.CellFormat(textW, 4, fmt.Sprintf("%d seats", card.Seats), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(textX, y+cardPadding+15)
	pdf.CellFormat(textW, 4, fmt.Sprintf("at %.0f / %.0f mm", card.XMM, card.YMM), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}
