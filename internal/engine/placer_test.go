package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomfit/roomfit/internal/geometry"
	"github.com/roomfit/roomfit/internal/model"
)

func squareRoom(size float64) model.Polygon {
	return model.Polygon{
		{X: 0, Y: 0},
		{X: size, Y: 0},
		{X: size, Y: size},
		{X: 0, Y: size},
	}
}

// testPlacer returns a placer with a deterministic sequential ID generator.
func testPlacer() *Placer {
	p := New(DefaultSettings())
	n := 0
	p.NewID = func() string {
		n++
		return fmt.Sprintf("item-%03d", n)
	}
	return p
}

// trestle is the reference furniture entry used across the sweep tests:
// 1200 mm wide, 450 mm deep, which with the 600 mm chair row yields a
// 1200 x 1050 mm collision footprint.
func trestle() model.FurnitureSpec {
	return model.FurnitureSpec{
		ID:         "trestle",
		Name:       "Trestle table",
		TableWidth: 1200,
		TableDepth: 450,
		Seats:      6,
		UnitPrice:  29.50,
		Enabled:    true,
	}
}

func TestPlaceRoomTooSmallForStandardGap(t *testing.T) {
	// 2000x2000 px room at scale 1: the first candidate rectangle sits at
	// (1300,1300) with size 1200x1050 and already exceeds the room bound,
	// so the sweep places nothing. An empty result is a valid outcome.
	p := testPlacer()

	items, err := p.Place(squareRoom(2000), nil, 1, []model.FurnitureSpec{trestle()}, 1300)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPlaceSixTablesInTwoRows(t *testing.T) {
	p := testPlacer()

	items, err := p.Place(squareRoom(6000), nil, 1, []model.FurnitureSpec{trestle()}, 1300)

	require.NoError(t, err)
	require.Len(t, items, 6)

	wantX := []float64{1300, 2550, 3800, 1300, 2550, 3800}
	wantY := []float64{1300, 1300, 1300, 3650, 3650, 3650}
	for i, it := range items {
		assert.InDelta(t, wantX[i], it.X, 1e-9, "item %d x", i)
		assert.InDelta(t, wantY[i], it.Y, 1e-9, "item %d y", i)
		assert.Zero(t, it.Rotation)
		assert.Equal(t, "trestle", it.Furniture.ID)
	}
}

func TestPlaceScaleConvertsFootprints(t *testing.T) {
	// The same physical room at 0.5 px/mm: a 12000x12000 mm room is
	// 6000x6000 px at scale 1 but 6000 px wide at scale 0.5 only if the
	// polygon is given in pixels. Here the polygon is 3000 px, matching a
	// 6000 mm room, and the layout must be identical to the scale-1 run on
	// the 6000 px room.
	p := testPlacer()

	items, err := p.Place(squareRoom(3000), nil, 0.5, []model.FurnitureSpec{trestle()}, 1300)

	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.InDelta(t, 650.0, items[0].X, 1e-9)
	assert.InDelta(t, 650.0, items[0].Y, 1e-9)
}

func TestPlaceHoleBlocksCells(t *testing.T) {
	p := testPlacer()
	room := squareRoom(6000)

	free, err := p.Place(room, nil, 1, []model.FurnitureSpec{trestle()}, 1300)
	require.NoError(t, err)

	// A pillar covering the middle cell of the first row.
	pillar := model.Polygon{
		{X: 2500, Y: 1200},
		{X: 3900, Y: 1200},
		{X: 3900, Y: 2500},
		{X: 2500, Y: 2500},
	}
	blocked, err := p.Place(room, []model.Polygon{pillar}, 1, []model.FurnitureSpec{trestle()}, 1300)
	require.NoError(t, err)

	assert.Less(t, len(blocked), len(free), "hole must remove at least one placement")
	assert.NotEmpty(t, blocked, "room is still mostly free")
}

func TestPlaceAdmissibilityPostCondition(t *testing.T) {
	// Every emitted footprint's corners and center are inside the room and
	// outside every hole. This re-checks the invariant the engine enforces
	// at emission time.
	p := testPlacer()
	room := model.Polygon{
		{X: 0, Y: 0},
		{X: 7000, Y: 0},
		{X: 7000, Y: 4000},
		{X: 3500, Y: 4000},
		{X: 3500, Y: 7000},
		{X: 0, Y: 7000},
	}
	holes := []model.Polygon{
		{{X: 1000, Y: 1000}, {X: 1800, Y: 1000}, {X: 1800, Y: 1800}, {X: 1000, Y: 1800}},
	}
	scale := model.Scale(0.8)

	items, err := p.Place(room, holes, scale, []model.FurnitureSpec{trestle()}, 900)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	c := geometry.SampledContainment{}
	for _, it := range items {
		w, h := it.FootprintPx(scale, p.Settings.ChairDepthMM)
		assert.True(t, c.RectAdmissible(it.X, it.Y, w, h, room, holes),
			"item %s at (%v,%v) violates containment", it.ID, it.X, it.Y)
	}
}

func TestPlaceFirstFitHonorsCatalogOrder(t *testing.T) {
	p := testPlacer()

	big := trestle()
	big.ID = "big"
	big.TableWidth = 2400
	small := trestle()
	small.ID = "small"

	// The big table leads the catalog, so wherever it fits it wins even
	// though the small one would fit too.
	items, err := p.Place(squareRoom(6000), nil, 1, []model.FurnitureSpec{big, small}, 1300)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "big", items[0].Furniture.ID)

	// Reversed order flips the priority.
	items, err = p.Place(squareRoom(6000), nil, 1, []model.FurnitureSpec{small, big}, 1300)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "small", items[0].Furniture.ID)
}

func TestPlaceSkipsDisabledEntries(t *testing.T) {
	p := testPlacer()

	disabled := trestle()
	disabled.ID = "disabled"
	disabled.Enabled = false
	enabled := trestle()
	enabled.ID = "enabled"

	items, err := p.Place(squareRoom(6000), nil, 1, []model.FurnitureSpec{disabled, enabled}, 1300)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, it := range items {
		assert.Equal(t, "enabled", it.Furniture.ID)
	}
}

func TestPlaceDeterministic(t *testing.T) {
	room := model.Polygon{
		{X: 100, Y: 50},
		{X: 6400, Y: 80},
		{X: 6300, Y: 5900},
		{X: 50, Y: 6100},
	}
	catalog := []model.FurnitureSpec{trestle()}

	run := func() []model.PlacedItem {
		p := testPlacer()
		items, err := p.Place(room, nil, 1, catalog, 900)
		require.NoError(t, err)
		return items
	}

	assert.Equal(t, run(), run(), "identical inputs and ID sequences must produce identical output")
}

func TestPlaceDensityMonotonicity(t *testing.T) {
	p := testPlacer()
	room := squareRoom(9000)
	catalog := []model.FurnitureSpec{trestle()}

	counts := make(map[model.LayoutPattern]int)
	for _, pattern := range model.Patterns {
		items, err := p.Place(room, nil, 1, catalog, pattern.AisleGapMM())
		require.NoError(t, err)
		counts[pattern] = len(items)
	}

	assert.GreaterOrEqual(t, counts[model.PatternTight], counts[model.PatternStandard])
	assert.GreaterOrEqual(t, counts[model.PatternStandard], counts[model.PatternGenerous])
}

func TestPlaceRejectsInvalidScale(t *testing.T) {
	// The original editor never validated the calibration factor; a zero
	// scale collapses every sweep gap to zero and the cursors stop
	// advancing. The engine must refuse such scales up front.
	p := testPlacer()
	room := squareRoom(6000)
	catalog := []model.FurnitureSpec{trestle()}

	for _, s := range []model.Scale{0, -1, model.Scale(math.NaN()), model.Scale(math.Inf(1))} {
		_, err := p.Place(room, nil, s, catalog, 1300)
		assert.ErrorIs(t, err, ErrInvalidScale, "scale %v", s)
	}
}

func TestPlaceDegenerateRoomYieldsEmptyResult(t *testing.T) {
	p := testPlacer()
	catalog := []model.FurnitureSpec{trestle()}

	for _, room := range []model.Polygon{nil, {}, {{X: 1, Y: 2}}, {{X: 1, Y: 2}, {X: 3, Y: 4}}} {
		items, err := p.Place(room, nil, 1, catalog, 1300)
		require.NoError(t, err)
		assert.Empty(t, items, "room with %d points", len(room))
	}
}

func TestPlaceIterationCeiling(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxIterations = 10
	p := New(settings)

	_, err := p.Place(squareRoom(50000), nil, 1, []model.FurnitureSpec{trestle()}, 900)
	assert.ErrorIs(t, err, ErrLayoutTooLarge)
}

func TestPlaceAllRunsEveryPattern(t *testing.T) {
	p := testPlacer()

	layouts, err := p.PlaceAll(squareRoom(9000), nil, 1, []model.FurnitureSpec{trestle()})
	require.NoError(t, err)
	require.Len(t, layouts, len(model.Patterns))

	for _, pattern := range model.Patterns {
		lr, ok := layouts[pattern]
		require.True(t, ok, "missing pattern %s", pattern)
		assert.Equal(t, pattern, lr.Pattern)
		assert.NotEmpty(t, lr.Items)
	}
}
