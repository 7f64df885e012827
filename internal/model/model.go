package model

import (
	"math"

	"github.com/google/uuid"
)

// Point represents a 2D coordinate in editing-pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon represents a closed outline as a sequence of 2D points.
// The polygon is implicitly closed: the last point connects back to the
// first. Winding order is not significant; every consumer must accept
// clockwise and counter-clockwise outlines alike.
type Polygon []Point

// BoundingBox returns the min and max corners of the polygon.
func (p Polygon) BoundingBox() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min = Point{X: p[0].X, Y: p[0].Y}
	max = Point{X: p[0].X, Y: p[0].Y}
	for _, pt := range p[1:] {
		if pt.X < min.X {
			min.X = pt.X
		}
		if pt.Y < min.Y {
			min.Y = pt.Y
		}
		if pt.X > max.X {
			max.X = pt.X
		}
		if pt.Y > max.Y {
			max.Y = pt.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (p Polygon) Translate(dx, dy float64) Polygon {
	result := make(Polygon, len(p))
	for i, pt := range p {
		result[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
	}
	return result
}

// Area returns the absolute area enclosed by the polygon (shoelace formula).
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Scale is the pixels-per-millimeter conversion factor linking the editing
// coordinate space to physical dimensions. All pixel/mm conversions in the
// planner go through this type so that unit mixing stays explicit.
type Scale float64

// Valid reports whether the scale can be used for placement.
// Zero, negative, and non-finite scales make every conversion degenerate.
func (s Scale) Valid() bool {
	return float64(s) > 0 && !math.IsInf(float64(s), 0) && !math.IsNaN(float64(s))
}

// ToPixels converts a physical length in millimeters to pixels.
func (s Scale) ToPixels(mm float64) float64 {
	return mm * float64(s)
}

// ToMillimeters converts a pixel length to millimeters.
func (s Scale) ToMillimeters(px float64) float64 {
	return px / float64(s)
}

// LayoutPattern names one of the three aisle-density levels.
type LayoutPattern string

const (
	PatternTight    LayoutPattern = "tight"    // Narrow aisles, maximum seating
	PatternStandard LayoutPattern = "standard" // Default banquet spacing
	PatternGenerous LayoutPattern = "generous" // Wide aisles, accessible layouts
)

// Patterns lists all layout patterns in increasing aisle width.
var Patterns = []LayoutPattern{PatternTight, PatternStandard, PatternGenerous}

// AisleGapMM returns the aisle clearance in millimeters for this pattern.
// Unknown patterns fall back to the standard gap.
func (lp LayoutPattern) AisleGapMM() float64 {
	switch lp {
	case PatternTight:
		return 900
	case PatternGenerous:
		return 1800
	default:
		return 1300
	}
}

// FurnitureSpec is an immutable furniture catalog entry. Dimensions are in
// millimeters; the planner only reads these entries.
type FurnitureSpec struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TableWidth float64 `json:"table_width"` // mm
	TableDepth float64 `json:"table_depth"` // mm, table surface only (chairs excluded)
	Seats      int     `json:"seats"`
	UnitPrice  float64 `json:"unit_price"`
	Color      string  `json:"color"` // Display color, hex RGB
	Enabled    bool    `json:"enabled"`
}

// NewFurnitureSpec creates a furniture entry with a generated ID.
func NewFurnitureSpec(name string, width, depth float64, seats int, price float64) FurnitureSpec {
	return FurnitureSpec{
		ID:         uuid.New().String()[:8],
		Name:       name,
		TableWidth: width,
		TableDepth: depth,
		Seats:      seats,
		UnitPrice:  price,
		Color:      "#4caf50",
		Enabled:    true,
	}
}

// PlacedItem is one furniture instance emitted by the placement engine.
// X and Y are the top-left corner of the table footprint in pixels.
// Rotation is carried for the exporters but is always 0 in this design.
type PlacedItem struct {
	ID        string        `json:"id"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Rotation  float64       `json:"rotation"`
	Furniture FurnitureSpec `json:"furniture"`
}

// FootprintPx returns the collision footprint of the item in pixels: the
// table width by the table depth plus the chair row.
func (pi PlacedItem) FootprintPx(scale Scale, chairDepthMM float64) (w, h float64) {
	return scale.ToPixels(pi.Furniture.TableWidth),
		scale.ToPixels(pi.Furniture.TableDepth + chairDepthMM)
}

// LayoutResult holds the outcome of one placement run.
type LayoutResult struct {
	Pattern LayoutPattern `json:"pattern"`
	Items   []PlacedItem  `json:"items"`
}

// TotalSeats returns the seat count across all placed items.
func (lr LayoutResult) TotalSeats() int {
	var total int
	for _, it := range lr.Items {
		total += it.Furniture.Seats
	}
	return total
}

// Plan ties everything together for save/load: the edited room geometry,
// the catalog snapshot used, and the last computed layouts.
type Plan struct {
	Name    string                         `json:"name"`
	Room    Polygon                        `json:"room"`
	Holes   []Polygon                      `json:"holes,omitempty"`
	Scale   Scale                          `json:"scale"`
	Pattern LayoutPattern                  `json:"pattern"`
	Catalog []FurnitureSpec                `json:"catalog"`
	Layouts map[LayoutPattern]LayoutResult `json:"layouts,omitempty"`
}

// NewPlan returns an empty plan with the default catalog and pattern.
func NewPlan() Plan {
	return Plan{
		Name:    "Untitled",
		Scale:   1,
		Pattern: PatternStandard,
		Catalog: DefaultCatalog().Entries,
	}
}
