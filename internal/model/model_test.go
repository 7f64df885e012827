package model

import (
	"math"
	"testing"
)

func TestPolygonBoundingBox(t *testing.T) {
	poly := Polygon{
		{X: 100, Y: 50},
		{X: 640, Y: 80},
		{X: 630, Y: 590},
		{X: 5, Y: 610},
	}
	min, max := poly.BoundingBox()

	if min.X != 5 || min.Y != 50 {
		t.Errorf("min = %v, want (5, 50)", min)
	}
	if max.X != 640 || max.Y != 610 {
		t.Errorf("max = %v, want (640, 610)", max)
	}
}

func TestPolygonBoundingBoxEmpty(t *testing.T) {
	min, max := Polygon{}.BoundingBox()
	if min != (Point{}) || max != (Point{}) {
		t.Errorf("empty polygon bbox = %v %v, want zero points", min, max)
	}
}

func TestPolygonTranslate(t *testing.T) {
	poly := Polygon{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}
	moved := poly.Translate(10, -2)

	if moved[0] != (Point{X: 11, Y: 0}) {
		t.Errorf("translated point = %v", moved[0])
	}
	if poly[0] != (Point{X: 1, Y: 2}) {
		t.Error("translate must not mutate the receiver")
	}
}

func TestPolygonArea(t *testing.T) {
	square := Polygon{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := square.Area(); got != 100 {
		t.Errorf("square area = %v, want 100", got)
	}
	reversed := Polygon{square[0], square[3], square[2], square[1]}
	if got := reversed.Area(); got != 100 {
		t.Errorf("reversed winding area = %v, want 100", got)
	}
	if got := (Polygon{{X: 1, Y: 1}, {X: 2, Y: 2}}).Area(); got != 0 {
		t.Errorf("degenerate polygon area = %v, want 0", got)
	}
}

func TestScaleValid(t *testing.T) {
	cases := []struct {
		scale Scale
		valid bool
	}{
		{1, true},
		{0.25, true},
		{0, false},
		{-3, false},
		{Scale(math.NaN()), false},
		{Scale(math.Inf(1)), false},
		{Scale(math.Inf(-1)), false},
	}
	for _, tc := range cases {
		if got := tc.scale.Valid(); got != tc.valid {
			t.Errorf("Scale(%v).Valid() = %v, want %v", tc.scale, got, tc.valid)
		}
	}
}

func TestScaleConversionsRoundTrip(t *testing.T) {
	s := Scale(0.4)
	px := s.ToPixels(1300)
	if px != 520 {
		t.Errorf("ToPixels(1300) = %v, want 520", px)
	}
	if mm := s.ToMillimeters(px); math.Abs(mm-1300) > 1e-9 {
		t.Errorf("round trip = %v, want 1300", mm)
	}
}

func TestLayoutPatternAisleGaps(t *testing.T) {
	if tight, std := PatternTight.AisleGapMM(), PatternStandard.AisleGapMM(); tight >= std {
		t.Errorf("tight gap %v must be below standard %v", tight, std)
	}
	if std, gen := PatternStandard.AisleGapMM(), PatternGenerous.AisleGapMM(); std >= gen {
		t.Errorf("standard gap %v must be below generous %v", std, gen)
	}
	if got := LayoutPattern("bogus").AisleGapMM(); got != PatternStandard.AisleGapMM() {
		t.Errorf("unknown pattern gap = %v, want standard fallback", got)
	}
}

func TestNewFurnitureSpec(t *testing.T) {
	spec := NewFurnitureSpec("Trestle", 1800, 750, 6, 29.50)
	if spec.ID == "" || len(spec.ID) != 8 {
		t.Errorf("expected 8-char generated ID, got %q", spec.ID)
	}
	if !spec.Enabled {
		t.Error("new entries start enabled")
	}
}

func TestPlacedItemFootprint(t *testing.T) {
	it := PlacedItem{Furniture: FurnitureSpec{TableWidth: 1200, TableDepth: 450}}
	w, h := it.FootprintPx(1, 600)
	if w != 1200 || h != 1050 {
		t.Errorf("footprint = %v x %v, want 1200 x 1050", w, h)
	}
	w, h = it.FootprintPx(0.5, 600)
	if w != 600 || h != 525 {
		t.Errorf("scaled footprint = %v x %v, want 600 x 525", w, h)
	}
}
