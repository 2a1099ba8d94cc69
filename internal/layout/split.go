package layout

import (
	"errors"
	"fmt"

	"github.com/piwi3910/TilePlan/internal/unit"
)

// SplitDirection selects which axis (or both) a split subdivides.
type SplitDirection string

const (
	SplitHorizontal SplitDirection = "horizontal" // subdivide height
	SplitVertical   SplitDirection = "vertical"   // subdivide width
	SplitBoth       SplitDirection = "both"       // subdivide both axes
)

// ErrInvalidRatio reports a malformed split ratio sequence.
var ErrInvalidRatio = errors.New("invalid split ratio")

// ratioBase is the per-mille denominator a ratio sequence must sum to.
const ratioBase = 1000

// validateRatio checks that ratio is non-empty, all-positive, and sums to
// exactly 1000 per-mille.
func validateRatio(ratio []int) error {
	if len(ratio) == 0 {
		return fmt.Errorf("empty sequence: %w", ErrInvalidRatio)
	}
	sum := 0
	for _, r := range ratio {
		if r <= 0 {
			return fmt.Errorf("non-positive value %d: %w", r, ErrInvalidRatio)
		}
		sum += r
	}
	if sum != ratioBase {
		return fmt.Errorf("sum %d, want %d: %w", sum, ratioBase, ErrInvalidRatio)
	}
	return nil
}

// segments divides span into len(ratio) parts in the given proportions.
// Integer division remainder goes to the last part, so the parts always sum
// to span exactly.
func segments(span unit.MicroUnit, ratio []int) []unit.MicroUnit {
	out := make([]unit.MicroUnit, len(ratio))
	var used unit.MicroUnit
	for i, r := range ratio {
		if i == len(ratio)-1 {
			out[i] = span - used
			break
		}
		out[i] = span * unit.MicroUnit(r) / ratioBase
		used += out[i]
	}
	return out
}

// Split subdivides parent into child cells in the given proportions. The
// parent keeps its identity and is hidden, not deleted; every child records
// its lineage so a later undo can restore the parent. The returned children
// are ordered left-to-right, then top-to-bottom.
func Split(parent *Cell, dir SplitDirection, ratio []int) ([]Cell, error) {
	if err := validateRatio(ratio); err != nil {
		return nil, err
	}
	switch dir {
	case SplitHorizontal, SplitVertical, SplitBoth:
	default:
		return nil, fmt.Errorf("direction %q: %w", dir, ErrInvalidRatio)
	}

	widths := []unit.MicroUnit{parent.Width}
	heights := []unit.MicroUnit{parent.Height}
	if dir == SplitVertical || dir == SplitBoth {
		widths = segments(parent.Width, ratio)
	}
	if dir == SplitHorizontal || dir == SplitBoth {
		heights = segments(parent.Height, ratio)
	}

	children := make([]Cell, 0, len(widths)*len(heights))
	var y unit.MicroUnit
	for _, h := range heights {
		var x unit.MicroUnit
		for _, w := range widths {
			children = append(children, Cell{
				ID:         NewCellID(),
				Row:        parent.Row,
				Col:        parent.Col,
				X:          parent.X + x,
				Y:          parent.Y + y,
				Width:      w,
				Height:     h,
				Piece:      PieceSplit,
				IsSplit:    true,
				ParentID:   parent.ID,
				SplitRatio: append([]int(nil), ratio...),
				Rotation:   parent.Rotation,
				Visible:    true,
			})
			x += w
		}
		y += h
	}

	parent.Visible = false
	return children, nil
}
