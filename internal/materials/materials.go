// Package materials derives supplementary material quantities (joint tape,
// silicone, corner angles) from a finished layout. It is a pure downstream
// consumer: everything is recomputed on demand from the currently visible
// grid and the declared junctions, with no state of its own.
package materials

import (
	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/unit"
)

// JunctionKind classifies a boundary segment of the tiled surface.
type JunctionKind string

const (
	JunctionWallWall  JunctionKind = "wall_wall"
	JunctionFloorWall JunctionKind = "floor_wall"
	JunctionOpening   JunctionKind = "opening" // window/door reveal, bath rim
)

// Junction is one boundary segment with its length.
type Junction struct {
	Kind   JunctionKind   `json:"kind"`
	Length unit.MicroUnit `json:"length"`
}

// CornerKind classifies a corner where angle profiles are placed.
type CornerKind string

const (
	CornerInner CornerKind = "inner"
	CornerOuter CornerKind = "outer"
)

// Corner is one corner of the surface boundary.
type Corner struct {
	Kind  CornerKind      `json:"kind"`
	Angle unit.DeciDegree `json:"angle"`
}

// Coverage per purchased unit: tape rolls and silicone tubes both cover 10 m.
const (
	TapeRollLength  unit.MicroUnit = 10_000_000
	SiliconeTubeRun unit.MicroUnit = 10_000_000
)

// Estimate holds the derived material quantities.
type Estimate struct {
	BoundaryPerimeter unit.MicroUnit `json:"boundary_perimeter"`

	TapeLength unit.MicroUnit `json:"tape_length"`
	TapeRolls  int            `json:"tape_rolls"`

	SiliconeLength unit.MicroUnit `json:"silicone_length"`
	SiliconeTubes  int            `json:"silicone_tubes"`

	InnerCorners int `json:"inner_corners"`
	OuterCorners int `json:"outer_corners"`
}

// Calculate derives material quantities from the visible grid boundary plus
// the declared junctions and corners. When no junctions are declared, the
// visible boundary perimeter is used for both tape and silicone; a plain
// rectangular surface defaults to four inner corners.
func Calculate(res *layout.Result, junctions []Junction, corners []Corner) Estimate {
	est := Estimate{BoundaryPerimeter: visiblePerimeter(res)}

	for _, j := range junctions {
		switch j.Kind {
		case JunctionWallWall, JunctionFloorWall:
			est.TapeLength += j.Length
		}
		switch j.Kind {
		case JunctionFloorWall, JunctionOpening:
			est.SiliconeLength += j.Length
		}
	}
	if len(junctions) == 0 {
		est.TapeLength = est.BoundaryPerimeter
		est.SiliconeLength = est.BoundaryPerimeter
	}

	est.TapeRolls = ceilDiv(est.TapeLength, TapeRollLength)
	est.SiliconeTubes = ceilDiv(est.SiliconeLength, SiliconeTubeRun)

	for _, c := range corners {
		switch c.Kind {
		case CornerInner:
			est.InnerCorners++
		case CornerOuter:
			est.OuterCorners++
		}
	}
	if len(corners) == 0 {
		est.InnerCorners = 4
	}
	return est
}

// visiblePerimeter returns the perimeter of the bounding box of all visible
// cells, or zero when everything is hidden.
func visiblePerimeter(res *layout.Result) unit.MicroUnit {
	cells := res.VisibleCells()
	if len(cells) == 0 {
		return 0
	}
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := cells[0].X+cells[0].Width, cells[0].Y+cells[0].Height
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.X+c.Width > maxX {
			maxX = c.X + c.Width
		}
		if c.Y+c.Height > maxY {
			maxY = c.Y + c.Height
		}
	}
	return 2 * ((maxX - minX) + (maxY - minY))
}

// ceilDiv returns ceil(length/per) as a count, never negative.
func ceilDiv(length, per unit.MicroUnit) int {
	if length <= 0 || per <= 0 {
		return 0
	}
	return int((length + per - 1) / per)
}
