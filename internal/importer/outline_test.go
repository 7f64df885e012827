package importer

import (
	"math"
	"strings"
	"testing"

	"github.com/roomfit/roomfit/internal/model"
)

const proposalJSON = `{
	"points": [
		{"x": 100, "y": 100},
		{"x": 900, "y": 100},
		{"x": 900, "y": 800},
		{"x": 100, "y": 800}
	],
	"reference": {
		"start": {"x": 100, "y": 100},
		"end": {"x": 350, "y": 100},
		"length_mm": 900
	}
}`

func TestDecodeProposal(t *testing.T) {
	proposal, err := DecodeProposal(strings.NewReader(proposalJSON))
	if err != nil {
		t.Fatalf("DecodeProposal: %v", err)
	}
	if len(proposal.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(proposal.Points))
	}
	if proposal.Reference == nil || proposal.Reference.LengthMM != 900 {
		t.Errorf("reference = %+v", proposal.Reference)
	}
}

func TestDecodeProposalRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"not json", "nope"},
		{"too few points", `{"points": [{"x": 1, "y": 2}, {"x": 3, "y": 4}]}`},
		{"off grid", `{"points": [{"x": -5, "y": 0}, {"x": 10, "y": 0}, {"x": 10, "y": 10}]}`},
		{"beyond grid", `{"points": [{"x": 0, "y": 0}, {"x": 1200, "y": 0}, {"x": 10, "y": 10}]}`},
	}
	for _, tc := range cases {
		if _, err := DecodeProposal(strings.NewReader(tc.json)); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestProposalToPixels(t *testing.T) {
	proposal, err := DecodeProposal(strings.NewReader(proposalJSON))
	if err != nil {
		t.Fatal(err)
	}

	// A 2000x1000 px image: grid x scales by 2, grid y by 1.
	poly := proposal.ToPixels(2000, 1000)
	if poly[0] != (model.Point{X: 200, Y: 100}) {
		t.Errorf("point 0 = %v, want (200, 100)", poly[0])
	}
	if poly[2] != (model.Point{X: 1800, Y: 800}) {
		t.Errorf("point 2 = %v, want (1800, 800)", poly[2])
	}
}

func TestScaleFromReference(t *testing.T) {
	proposal, err := DecodeProposal(strings.NewReader(proposalJSON))
	if err != nil {
		t.Fatal(err)
	}

	// Reference spans 250 grid units horizontally; on a 2000 px wide image
	// that is 500 px for 900 mm.
	scale, err := proposal.ScaleFromReference(2000, 1000)
	if err != nil {
		t.Fatalf("ScaleFromReference: %v", err)
	}
	if math.Abs(float64(scale)-500.0/900.0) > 1e-9 {
		t.Errorf("scale = %v, want %v", scale, 500.0/900.0)
	}
	if !scale.Valid() {
		t.Error("derived scale must be valid")
	}
}

func TestScaleFromReferenceErrors(t *testing.T) {
	proposal := OutlineProposal{
		Points: []model.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
	}
	if _, err := proposal.ScaleFromReference(1000, 1000); err == nil {
		t.Error("expected an error without a reference segment")
	}

	proposal.Reference = &ReferenceSegment{
		Start: model.Point{X: 5, Y: 5}, End: model.Point{X: 5, Y: 5}, LengthMM: 900,
	}
	if _, err := proposal.ScaleFromReference(1000, 1000); err == nil {
		t.Error("expected an error for a zero-length segment")
	}

	proposal.Reference = &ReferenceSegment{
		Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 100, Y: 0}, LengthMM: 0,
	}
	if _, err := proposal.ScaleFromReference(1000, 1000); err == nil {
		t.Error("expected an error for a non-positive physical length")
	}
}
