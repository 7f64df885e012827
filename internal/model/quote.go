package model

import (
	"math"
	"sort"
)

// QuoteLine is one line of the priced layout: all placed instances of a
// single furniture entry.
type QuoteLine struct {
	FurnitureID string  `json:"furniture_id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Seats       int     `json:"seats"` // Seats contributed by this line
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Quote holds the line-itemized cost of one layout. No currency formatting
// or tax computation happens here; the exporter renders the numbers.
type Quote struct {
	Pattern       LayoutPattern `json:"pattern"`
	Lines         []QuoteLine   `json:"lines"`
	TotalItems    int           `json:"total_items"`
	TotalSeats    int           `json:"total_seats"`
	Subtotal      float64       `json:"subtotal"`
	ServiceFeePct float64       `json:"service_fee_pct"` // e.g. 10 for 10%
	ServiceFee    float64       `json:"service_fee"`
	Total         float64       `json:"total"`
}

// BuildQuote aggregates a layout into a quote. Lines are grouped per
// furniture entry and sorted by name for stable output. The service fee
// percentage is applied on top of the subtotal and rounded to cents.
func BuildQuote(layout LayoutResult, serviceFeePct float64) Quote {
	byID := make(map[string]*QuoteLine)
	for _, it := range layout.Items {
		line, ok := byID[it.Furniture.ID]
		if !ok {
			line = &QuoteLine{
				FurnitureID: it.Furniture.ID,
				Name:        it.Furniture.Name,
				UnitPrice:   it.Furniture.UnitPrice,
			}
			byID[it.Furniture.ID] = line
		}
		line.Quantity++
		line.Seats += it.Furniture.Seats
		line.LineTotal = roundCents(float64(line.Quantity) * line.UnitPrice)
	}

	quote := Quote{Pattern: layout.Pattern, ServiceFeePct: serviceFeePct}
	for _, line := range byID {
		quote.Lines = append(quote.Lines, *line)
		quote.TotalItems += line.Quantity
		quote.TotalSeats += line.Seats
		quote.Subtotal += line.LineTotal
	}
	sort.Slice(quote.Lines, func(i, j int) bool {
		return quote.Lines[i].Name < quote.Lines[j].Name
	})

	quote.Subtotal = roundCents(quote.Subtotal)
	quote.ServiceFee = roundCents(quote.Subtotal * serviceFeePct / 100.0)
	quote.Total = roundCents(quote.Subtotal + quote.ServiceFee)
	return quote
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
