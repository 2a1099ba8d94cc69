package materials

import (
	"testing"

	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/pattern"
	"github.com/piwi3910/TilePlan/internal/unit"
)

func testResult(t *testing.T) *layout.Result {
	t.Helper()
	res, err := layout.Compute(layout.Input{
		AreaWidth:  3_000_000,
		AreaHeight: 2_000_000,
		TileWidth:  600_000,
		TileHeight: 600_000,
		Gap:        0,
		Horizontal: layout.AlignLeft,
		Vertical:   layout.AlignTop,
		Pattern:    pattern.LinearSquare,
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	return res
}

func TestCalculateDefaultsToBoundaryPerimeter(t *testing.T) {
	res := testResult(t)
	est := Calculate(res, nil, nil)

	// 3 m x 2 m surface: perimeter 10 m.
	if est.BoundaryPerimeter != 10_000_000 {
		t.Errorf("expected 10 m perimeter, got %s m", unit.FormatM(est.BoundaryPerimeter))
	}
	if est.TapeLength != est.BoundaryPerimeter {
		t.Error("tape length should default to the boundary perimeter")
	}
	if est.TapeRolls != 1 {
		t.Errorf("10 m of tape needs exactly 1 roll, got %d", est.TapeRolls)
	}
	if est.SiliconeTubes != 1 {
		t.Errorf("10 m of silicone needs exactly 1 tube, got %d", est.SiliconeTubes)
	}
	if est.InnerCorners != 4 {
		t.Errorf("rectangular surface defaults to 4 inner corners, got %d", est.InnerCorners)
	}
}

func TestCalculateRollCeiling(t *testing.T) {
	res := testResult(t)
	junctions := []Junction{
		{Kind: JunctionFloorWall, Length: 10_000_001}, // a hair over one roll
	}
	est := Calculate(res, junctions, nil)
	if est.TapeRolls != 2 {
		t.Errorf("expected 2 rolls, got %d", est.TapeRolls)
	}
	if est.SiliconeTubes != 2 {
		t.Errorf("expected 2 tubes, got %d", est.SiliconeTubes)
	}
}

func TestCalculateJunctionKinds(t *testing.T) {
	res := testResult(t)
	junctions := []Junction{
		{Kind: JunctionWallWall, Length: 2_000_000},
		{Kind: JunctionFloorWall, Length: 3_000_000},
		{Kind: JunctionOpening, Length: 1_000_000},
	}
	est := Calculate(res, junctions, nil)

	// Tape covers wall-wall and floor-wall; silicone covers floor-wall and
	// openings.
	if est.TapeLength != 5_000_000 {
		t.Errorf("tape length %s m, want 5", unit.FormatM(est.TapeLength))
	}
	if est.SiliconeLength != 4_000_000 {
		t.Errorf("silicone length %s m, want 4", unit.FormatM(est.SiliconeLength))
	}
}

func TestCalculateCorners(t *testing.T) {
	res := testResult(t)
	corners := []Corner{
		{Kind: CornerInner, Angle: 900},
		{Kind: CornerInner, Angle: 900},
		{Kind: CornerOuter, Angle: 2700},
	}
	est := Calculate(res, nil, corners)
	if est.InnerCorners != 2 || est.OuterCorners != 1 {
		t.Errorf("expected 2 inner / 1 outer, got %d / %d", est.InnerCorners, est.OuterCorners)
	}
}

func TestCalculateHiddenCellsShrinkBoundary(t *testing.T) {
	res := testResult(t)
	// Hide the trailing partial row; the visible boundary shrinks.
	for i := range res.Cells[3] {
		res.Cells[3][i].Visible = false
	}
	est := Calculate(res, nil, nil)
	if est.BoundaryPerimeter != 2*(3_000_000+1_800_000) {
		t.Errorf("unexpected perimeter %s m", unit.FormatM(est.BoundaryPerimeter))
	}
}

func TestCalculateEmptyGrid(t *testing.T) {
	res := testResult(t)
	for i := range res.Cells {
		for j := range res.Cells[i] {
			res.Cells[i][j].Visible = false
		}
	}
	est := Calculate(res, nil, nil)
	if est.BoundaryPerimeter != 0 || est.TapeRolls != 0 {
		t.Errorf("fully hidden grid should need nothing, got %+v", est)
	}
}
