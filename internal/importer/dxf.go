package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/roomfit/roomfit/internal/geometry"
	"github.com/roomfit/roomfit/internal/model"
)

// RoomImport holds the result of importing a floor-plan drawing.
// The largest closed shape becomes the room outline; closed shapes nested
// inside it become exclusion zones. Shapes outside the room are reported as
// warnings and dropped.
type RoomImport struct {
	Room     model.Polygon
	Holes    []model.Polygon
	Errors   []string
	Warnings []string
}

// segment is a line piece used for chaining loose LINE entities into closed
// outlines.
type segment struct {
	start model.Point
	end   model.Point
}

// ImportDXF reads room geometry from a DXF floor plan. Supported entities:
// LWPOLYLINE (bulges interpolated as arcs), CIRCLE, and chains of connected
// LINEs. Coordinates are taken as drawn; callers calibrate the scale
// separately.
func ImportDXF(path string) RoomImport {
	result := RoomImport{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Polygon
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			poly := lwPolylineToPolygon(e)
			if len(poly) >= 3 {
				outlines = append(outlines, poly)
			} else {
				result.Warnings = append(result.Warnings,
					"skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleToPolygon(e, 64))

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Dimension lines, text, hatches: not geometry we consume
		}
	}

	for _, chained := range chainSegments(segments, 0.01) {
		if len(chained) >= 3 {
			outlines = append(outlines, chained)
		}
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "no closed shapes found in DXF file")
		return result
	}

	// The largest shape is the room; everything nested inside it is a hole.
	roomIdx := 0
	for i, o := range outlines {
		if o.Area() > outlines[roomIdx].Area() {
			roomIdx = i
		}
	}
	result.Room = outlines[roomIdx]

	for i, o := range outlines {
		if i == roomIdx {
			continue
		}
		if geometry.PointInPolygon(o[0], result.Room) {
			result.Holes = append(result.Holes, o)
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped shape outside the room outline (%d vertices)", len(o)))
		}
	}

	return result
}

// lwPolylineToPolygon converts an LWPOLYLINE entity, interpolating bulged
// segments as arcs.
func lwPolylineToPolygon(lw *entity.LwPolyline) model.Polygon {
	var poly model.Polygon
	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > 1e-9 {
			next := lw.Vertices[(i+1)%len(lw.Vertices)]
			arc := bulgeArc(current, model.Point{X: next[0], Y: next[1]}, bulge, 16)
			poly = append(poly, arc[:len(arc)-1]...)
		} else {
			poly = append(poly, current)
		}
	}
	return poly
}

// bulgeArc interpolates the arc between two vertices. The DXF bulge factor
// is the tangent of a quarter of the included angle.
func bulgeArc(p1, p2 model.Point, bulge float64, segments int) []model.Point {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []model.Point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	// Positive bulge arcs run counterclockwise, so the center sits on the
	// left of the chord direction.
	perpX, perpY := -dy/chord, dx/chord
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := (p1.X+p2.X)/2 + perpX*(radius-sagitta)
	cy := (p1.Y+p2.Y)/2 + perpY*(radius-sagitta)

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	}
	if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]model.Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		a := start + t*(end-start)
		pts = append(pts, model.Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
	}
	return pts
}

// circleToPolygon approximates a circle (a round pillar, typically) as a
// regular polygon.
func circleToPolygon(c *entity.Circle, segments int) model.Polygon {
	poly := make(model.Polygon, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		poly[i] = model.Point{
			X: c.Center[0] + c.Radius*math.Cos(a),
			Y: c.Center[1] + c.Radius*math.Sin(a),
		}
	}
	return poly
}

// chainSegments connects loose segments into closed outlines. tolerance is
// the maximum endpoint distance treated as connected.
func chainSegments(segs []segment, tolerance float64) []model.Polygon {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Polygon

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx < 0 {
			break
		}

		used[startIdx] = true
		chain := model.Polygon{segs[startIdx].start, segs[startIdx].end}

		for {
			head := chain[len(chain)-1]
			found := false
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(head, s.start, tolerance):
					chain = append(chain, s.end)
					used[i] = true
					found = true
				case pointsClose(head, s.end, tolerance):
					chain = append(chain, s.start)
					used[i] = true
					found = true
				}
				if found {
					break
				}
			}
			if !found {
				break
			}
			// Closed loop: drop the duplicated closing point
			if pointsClose(chain[len(chain)-1], chain[0], tolerance) {
				chain = chain[:len(chain)-1]
				outlines = append(outlines, chain)
				chain = nil
				break
			}
		}
		// Open chains are discarded; a room outline must close
	}

	return outlines
}

func pointsClose(a, b model.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
