// Package importer converts external floor-plan inputs (vision outline
// proposals, DXF drawings, furniture lists) into the planner's model types.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/roomfit/roomfit/internal/model"
)

// gridMax is the extent of the normalized coordinate grid used by the
// outline acquisition service: both axes run 0..1000 from the image's
// top-left corner regardless of its pixel size.
const gridMax = 1000.0

// OutlineProposal is the outline acquisition service's answer for one
// floor-plan image: a room outline on the normalized grid, optionally with a
// reference segment of known physical length for scale calibration.
type OutlineProposal struct {
	Points    []model.Point     `json:"points"`
	Reference *ReferenceSegment `json:"reference,omitempty"`
}

// ReferenceSegment is a line on the normalized grid whose real-world length
// is known, e.g. a door opening the user identified as 900 mm.
type ReferenceSegment struct {
	Start    model.Point `json:"start"`
	End      model.Point `json:"end"`
	LengthMM float64     `json:"length_mm"`
}

// DecodeProposal reads an OutlineProposal from JSON.
func DecodeProposal(r io.Reader) (OutlineProposal, error) {
	var proposal OutlineProposal
	if err := json.NewDecoder(r).Decode(&proposal); err != nil {
		return OutlineProposal{}, fmt.Errorf("decode outline proposal: %w", err)
	}
	if len(proposal.Points) < 3 {
		return OutlineProposal{}, fmt.Errorf("outline proposal has %d points, need at least 3", len(proposal.Points))
	}
	for i, p := range proposal.Points {
		if p.X < 0 || p.X > gridMax || p.Y < 0 || p.Y > gridMax {
			return OutlineProposal{}, fmt.Errorf("point %d (%v, %v) outside the 0-%v grid", i, p.X, p.Y, gridMax)
		}
	}
	return proposal, nil
}

// ToPixels rescales the proposal's outline from the normalized grid into the
// pixel space of the image it was derived from. The planner core only ever
// sees pixel coordinates.
func (op OutlineProposal) ToPixels(imageW, imageH float64) model.Polygon {
	poly := make(model.Polygon, len(op.Points))
	for i, p := range op.Points {
		poly[i] = model.Point{
			X: p.X / gridMax * imageW,
			Y: p.Y / gridMax * imageH,
		}
	}
	return poly
}

// ScaleFromReference derives the pixels-per-millimeter scale from the
// proposal's reference segment, rescaled into the same image pixel space.
// Returns an error when the proposal carries no usable reference.
func (op OutlineProposal) ScaleFromReference(imageW, imageH float64) (model.Scale, error) {
	ref := op.Reference
	if ref == nil {
		return 0, fmt.Errorf("outline proposal has no reference segment")
	}
	if ref.LengthMM <= 0 {
		return 0, fmt.Errorf("reference segment length %v mm is not positive", ref.LengthMM)
	}

	dx := (ref.End.X - ref.Start.X) / gridMax * imageW
	dy := (ref.End.Y - ref.Start.Y) / gridMax * imageH
	px := math.Hypot(dx, dy)
	if px <= 0 {
		return 0, fmt.Errorf("reference segment has zero pixel length")
	}

	scale := model.Scale(px / ref.LengthMM)
	if !scale.Valid() {
		return 0, fmt.Errorf("derived scale %v is not usable", float64(scale))
	}
	return scale, nil
}
