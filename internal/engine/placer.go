// Package engine implements the greedy row-sweep furniture placement.
package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/roomfit/roomfit/internal/geometry"
	"github.com/roomfit/roomfit/internal/model"
)

var (
	// ErrInvalidScale is returned when the pixels-per-millimeter scale is
	// non-positive or non-finite. With such a scale the sweep gaps collapse
	// to zero and the cursor loops never advance, so the engine refuses to
	// start.
	ErrInvalidScale = errors.New("engine: scale must be positive and finite")

	// ErrLayoutTooLarge is returned when the sweep exceeds the configured
	// iteration ceiling. Callers that bound latency should treat this as
	// "computation too large", not as a partial result.
	ErrLayoutTooLarge = errors.New("engine: layout exceeds iteration limit")
)

// PlacementSettings holds the sweep constants. All values are millimeters
// and get converted to pixels through the plan scale.
type PlacementSettings struct {
	ChairDepthMM   float64 `json:"chair_depth_mm"`    // Chair row behind each table edge
	ItemGapMM      float64 `json:"item_gap_mm"`       // Gap between items in a row
	SearchStepMM   float64 `json:"search_step_mm"`    // Cursor advance when nothing fits
	EmptyRowStepMM float64 `json:"empty_row_step_mm"` // Row advance when a full row stays empty
	MaxIterations  int     `json:"max_iterations"`    // Cursor-step ceiling, 0 = unlimited
}

// DefaultSettings returns the standard sweep constants.
func DefaultSettings() PlacementSettings {
	return PlacementSettings{
		ChairDepthMM:   600,
		ItemGapMM:      50,
		SearchStepMM:   50,
		EmptyRowStepMM: 100,
		MaxIterations:  0,
	}
}

// Placer runs the deterministic greedy row-major sweep. It is stateless
// between calls; identical inputs and an identical ID sequence produce
// identical output.
type Placer struct {
	Settings    PlacementSettings
	Containment geometry.Containment

	// NewID generates placement IDs. Inject a counter in tests for
	// deterministic output; the default uses random uuids.
	NewID func() string
}

// New creates a Placer with the given settings, five-point sampled
// containment, and uuid-based IDs.
func New(settings PlacementSettings) *Placer {
	return &Placer{
		Settings:    settings,
		Containment: geometry.SampledContainment{},
		NewID:       func() string { return uuid.New().String()[:8] },
	}
}

// Place fills the room polygon with furniture rows and returns the placed
// items in generation order (row-major, then left to right within a row).
//
// The sweep walks the room's bounding box top to bottom. Each row starts at
// the left edge plus the aisle gap; at every cursor position the enabled
// catalog entries are tried in catalog order and the first admissible one is
// placed (first-fit — catalog order is the caller's priority ranking). The
// collision footprint of an entry is its table width by its table depth plus
// the chair row. A row advances by its tallest footprint plus the aisle gap;
// a row that placed nothing advances by a fixed step so the sweep cannot
// stall.
//
// A room with fewer than 3 points yields an empty result and no error. An
// empty result for a valid room is a legitimate outcome, not a failure.
func (p *Placer) Place(room model.Polygon, holes []model.Polygon, scale model.Scale, catalog []model.FurnitureSpec, aisleGapMM float64) ([]model.PlacedItem, error) {
	if !scale.Valid() {
		return nil, ErrInvalidScale
	}
	if len(room) < 3 {
		return []model.PlacedItem{}, nil
	}

	var enabled []model.FurnitureSpec
	for _, spec := range catalog {
		if spec.Enabled {
			enabled = append(enabled, spec)
		}
	}

	min, max := room.BoundingBox()
	gapPx := scale.ToPixels(aisleGapMM)
	itemGapPx := scale.ToPixels(p.Settings.ItemGapMM)
	searchStepPx := scale.ToPixels(p.Settings.SearchStepMM)
	emptyRowStepPx := scale.ToPixels(p.Settings.EmptyRowStepMM)

	items := []model.PlacedItem{}
	steps := 0

	for cursorY := min.Y + gapPx; cursorY < max.Y; {
		rowHeight := 0.0

		for cursorX := min.X + gapPx; cursorX < max.X; {
			if p.Settings.MaxIterations > 0 {
				steps++
				if steps > p.Settings.MaxIterations {
					return nil, ErrLayoutTooLarge
				}
			}

			placed := false
			for _, spec := range enabled {
				w := scale.ToPixels(spec.TableWidth)
				totalH := scale.ToPixels(spec.TableDepth + p.Settings.ChairDepthMM)
				if !p.Containment.RectAdmissible(cursorX, cursorY, w, totalH, room, holes) {
					continue
				}
				items = append(items, model.PlacedItem{
					ID:        p.NewID(),
					X:         cursorX,
					Y:         cursorY,
					Rotation:  0,
					Furniture: spec,
				})
				cursorX += w + itemGapPx
				if totalH > rowHeight {
					rowHeight = totalH
				}
				placed = true
				break
			}
			if !placed {
				cursorX += searchStepPx
			}
		}

		if rowHeight > 0 {
			cursorY += rowHeight + gapPx
		} else {
			cursorY += emptyRowStepPx
		}
	}

	return items, nil
}

// PlaceAll runs the sweep once per layout pattern with the pattern's aisle
// gap. The three runs share no state; results are keyed by pattern.
func (p *Placer) PlaceAll(room model.Polygon, holes []model.Polygon, scale model.Scale, catalog []model.FurnitureSpec) (map[model.LayoutPattern]model.LayoutResult, error) {
	results := make(map[model.LayoutPattern]model.LayoutResult, len(model.Patterns))
	for _, pattern := range model.Patterns {
		items, err := p.Place(room, holes, scale, catalog, pattern.AisleGapMM())
		if err != nil {
			return nil, err
		}
		results[pattern] = model.LayoutResult{Pattern: pattern, Items: items}
	}
	return results, nil
}
