// Package geometry provides the polygon containment tests and the
// rectilinear snapping used by the placement engine and the editor glue.
package geometry

import "github.com/roomfit/roomfit/internal/model"

// PointInPolygon reports whether the point lies inside the polygon, using a
// horizontal ray-casting parity test. An edge counts as crossed when its
// y-span strictly straddles the point's y and the edge's x at that height is
// to the right of the point. The test is exact for simple polygons; a point
// exactly on an edge may fall on either side.
func PointInPolygon(pt model.Point, poly model.Polygon) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y
		if (yi > pt.Y) != (yj > pt.Y) {
			xAt := (xj-xi)*(pt.Y-yi)/(yj-yi) + xi
			if xAt > pt.X {
				inside = !inside
			}
		}
	}
	return inside
}

// Containment decides whether a candidate furniture footprint is admissible
// at a given position. Implementations may trade exactness for speed; the
// placement engine only depends on this interface.
type Containment interface {
	// RectAdmissible reports whether the axis-aligned rectangle with
	// top-left corner (x, y) and size (w, h) lies inside the room and
	// outside every hole.
	RectAdmissible(x, y, w, h float64, room model.Polygon, holes []model.Polygon) bool
}

// SampledContainment tests a rectangle by sampling its four corners and its
// center. A hole or a concave room edge that cuts through the rectangle
// without covering any of the five samples goes undetected; that is the
// accepted trade-off for interactive-speed placement. Swapping in an exact
// clipping implementation only requires a new Containment.
type SampledContainment struct{}

// RectAdmissible implements Containment via five-point sampling.
func (SampledContainment) RectAdmissible(x, y, w, h float64, room model.Polygon, holes []model.Polygon) bool {
	samples := [5]model.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x, Y: y + h},
		{X: x + w, Y: y + h},
		{X: x + w/2, Y: y + h/2},
	}
	for _, s := range samples {
		if !PointInPolygon(s, room) {
			return false
		}
		for _, hole := range holes {
			if PointInPolygon(s, hole) {
				return false
			}
		}
	}
	return true
}
