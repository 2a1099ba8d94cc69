// Package pattern maps a layout pattern identifier and grid coordinates to
// per-cell placement directives. Every pattern is a pure function of
// (row, col); there is no engine state, so results are reproducible and the
// functions are safe for concurrent callers.
package pattern

import (
	"errors"
	"fmt"

	"github.com/piwi3910/TilePlan/internal/unit"
)

// Pattern identifies one of the fixed layout patterns.
type Pattern string

const (
	LinearSquare           Pattern = "linear_square"
	StackBond              Pattern = "stack_bond"
	VerticalStack          Pattern = "vertical_stack"
	RunningBondSquare      Pattern = "running_bond_square"
	RunningBondOffset      Pattern = "running_bond_offset"
	VerticalRunningBond    Pattern = "vertical_running_bond"
	VerticalStackOffset    Pattern = "vertical_stack_offset"
	TraditionalRunningBond Pattern = "traditional_running_bond"
	OneThirdRunningBond    Pattern = "one_third_running_bond"
	Diamond                Pattern = "diamond"
	DiagonalRunning        Pattern = "diagonal_running"
	DiagonalRunningPoint   Pattern = "diagonal_running_point"
	TraditionalHerringbone Pattern = "traditional_herringbone"
	StraightHerringbone    Pattern = "straight_herringbone"
	BasketWeave            Pattern = "basket_weave"
)

// All lists every supported pattern in a stable order.
var All = []Pattern{
	LinearSquare,
	StackBond,
	VerticalStack,
	RunningBondSquare,
	RunningBondOffset,
	VerticalRunningBond,
	VerticalStackOffset,
	TraditionalRunningBond,
	OneThirdRunningBond,
	Diamond,
	DiagonalRunning,
	DiagonalRunningPoint,
	TraditionalHerringbone,
	StraightHerringbone,
	BasketWeave,
}

// ErrUnknownPattern reports an identifier outside the fixed set.
var ErrUnknownPattern = errors.New("unknown pattern")

// ErrInvalidOffset reports a custom offset ratio outside 0–1000 per-mille.
var ErrInvalidOffset = errors.New("custom offset ratio must be 0-1000 per-mille")

// Directive tells the layout engine how to place one cell.
type Directive struct {
	// Offset shifts the cell along the row axis.
	Offset unit.MicroUnit
	// Rotation is the tile rotation, always one of the quarter turns.
	Rotation unit.DeciDegree
	// GridAngle rotates the whole grid (450 for diagonal patterns). It is a
	// grid-level angle, not a tile rotation, so it is not restricted to
	// quarter turns.
	GridAngle unit.DeciDegree
	// Alternate marks cells whose orientation alternates with the paired
	// neighbor (herringbone and basket weave pairs).
	Alternate bool
}

// Parse returns the Pattern for an identifier string.
func Parse(s string) (Pattern, error) {
	for _, p := range All {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownPattern)
}

// HasCustomOffset reports whether p takes a caller-supplied offset ratio
// instead of a fixed constant.
func (p Pattern) HasCustomOffset() bool {
	return p == RunningBondOffset || p == VerticalStackOffset
}

// IsVertical reports whether tiles stand upright (rotated a quarter turn).
func (p Pattern) IsVertical() bool {
	switch p {
	case VerticalStack, VerticalRunningBond, VerticalStackOffset:
		return true
	}
	return false
}

// IsDiagonal reports whether the whole grid is rotated 45 degrees.
func (p Pattern) IsDiagonal() bool {
	switch p {
	case Diamond, DiagonalRunning, DiagonalRunningPoint:
		return true
	}
	return false
}

// IsPaired reports whether the pattern emits two interleaved orientations per
// logical position (herringbone and basket weave).
func (p Pattern) IsPaired() bool {
	switch p {
	case TraditionalHerringbone, StraightHerringbone, BasketWeave:
		return true
	}
	return false
}

// DirectiveFor computes the placement directive(s) for the cell at
// (row, col). Paired patterns return two directives, one per orientation of
// the pair; all others return one. customPerMille supplies the offset ratio
// for patterns with a caller-chosen offset and is ignored otherwise.
func DirectiveFor(p Pattern, row, col int, tileW, tileH unit.MicroUnit, customPerMille int) ([]Directive, error) {
	if p.HasCustomOffset() && (customPerMille < 0 || customPerMille > 1000) {
		return nil, fmt.Errorf("%d: %w", customPerMille, ErrInvalidOffset)
	}

	switch p {
	case LinearSquare, StackBond:
		return []Directive{{}}, nil

	case VerticalStack:
		return []Directive{{Rotation: unit.Rot90}}, nil

	case RunningBondSquare, TraditionalRunningBond:
		return []Directive{{Offset: rowOffset(row, tileW, 500)}}, nil

	case RunningBondOffset:
		return []Directive{{Offset: rowOffset(row, tileW, customPerMille)}}, nil

	case VerticalRunningBond:
		return []Directive{{
			Offset:   rowOffset(row, tileH, 500),
			Rotation: unit.Rot90,
		}}, nil

	case VerticalStackOffset:
		return []Directive{{
			Offset:   rowOffset(row, tileH, customPerMille),
			Rotation: unit.Rot90,
		}}, nil

	case OneThirdRunningBond:
		// Each row steps one third further; the cycle repeats every three rows.
		step := row % 3
		return []Directive{{Offset: tileW * unit.MicroUnit(step) / 3}}, nil

	case Diamond:
		return []Directive{{GridAngle: 450}}, nil

	case DiagonalRunning:
		return []Directive{{GridAngle: 450, Offset: rowOffset(row, tileW, 500)}}, nil

	case DiagonalRunningPoint:
		// Point-aligned variant: alternate rows mirror instead of shift.
		d := Directive{GridAngle: 450}
		if row%2 == 1 {
			d.Rotation = unit.Rot180
		}
		return []Directive{d}, nil

	case TraditionalHerringbone:
		// The pair zig-zags: upright then flat, phase advancing per row.
		first := Directive{Alternate: true}
		second := Directive{Rotation: unit.Rot90, Alternate: true}
		if (row+col)%2 == 1 {
			first, second = second, first
		}
		return []Directive{first, second}, nil

	case StraightHerringbone:
		first := Directive{Alternate: true}
		second := Directive{Rotation: unit.Rot90, Alternate: true}
		if row%2 == 1 {
			first, second = second, first
		}
		return []Directive{first, second}, nil

	case BasketWeave:
		// Like herringbone, the pair members differ by a quarter turn; the
		// leading orientation checkerboards across the 2-tile blocks.
		first := Directive{Alternate: true}
		second := Directive{Rotation: unit.Rot90, Alternate: true}
		if (row+col)%2 == 1 {
			first, second = second, first
		}
		return []Directive{first, second}, nil
	}

	return nil, fmt.Errorf("%q: %w", p, ErrUnknownPattern)
}

// rowOffset shifts odd rows by perMille thousandths of the tile dimension.
func rowOffset(row int, tile unit.MicroUnit, perMille int) unit.MicroUnit {
	if row%2 == 0 {
		return 0
	}
	return tile * unit.MicroUnit(perMille) / 1000
}
