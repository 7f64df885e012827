package geometry

import (
	"sort"

	"github.com/roomfit/roomfit/internal/model"
)

// SnapRectilinear cleans up a hand-drawn outline by pulling near-aligned
// vertex coordinates onto shared axis lines. The x and y coordinates are
// clustered independently: values are sorted and scanned in ascending order,
// chaining consecutive values whose gap is at most threshold, and every
// value in a chain is replaced by the chain's mean.
//
// Chaining is transitive: values at 0, 15 and 30 merge under threshold 20
// even though the extremes differ by 30. That behavior is what merges long
// runs of near-collinear hand-drawn vertices, so it is deliberate.
//
// Inputs with fewer than 3 points are returned unchanged. Output has the
// same length and order as the input.
func SnapRectilinear(pts []model.Point, threshold float64) []model.Point {
	if len(pts) < 3 {
		return pts
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}

	snapX := snapAxis(xs, threshold)
	snapY := snapAxis(ys, threshold)

	out := make([]model.Point, len(pts))
	for i, p := range pts {
		out[i] = model.Point{X: snapX[p.X], Y: snapY[p.Y]}
	}
	return out
}

// snapAxis clusters one coordinate axis and returns the raw-value to
// snapped-value mapping. Duplicate raw values share a map entry, so repeated
// coordinates from right-angle drawing snap identically.
func snapAxis(values []float64, threshold float64) map[float64]float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mapping := make(map[float64]float64, len(sorted))
	var chain []float64
	flush := func() {
		if len(chain) == 0 {
			return
		}
		var sum float64
		for _, v := range chain {
			sum += v
		}
		mean := sum / float64(len(chain))
		for _, v := range chain {
			mapping[v] = mean
		}
		chain = chain[:0]
	}

	for _, v := range sorted {
		if len(chain) > 0 && v-chain[len(chain)-1] > threshold {
			flush()
		}
		chain = append(chain, v)
	}
	flush()

	return mapping
}
