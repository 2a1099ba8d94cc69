// Package layout computes tile grids for rectangular surfaces. Given the
// surface size, tile size, grout gap, alignment, and a layout pattern it
// produces the full matrix of classified tile cells plus aggregate counts and
// edge remainders. The computation is pure: the same input always yields the
// same result, and nothing is mutated after the result is returned.
package layout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/TilePlan/internal/pattern"
	"github.com/piwi3910/TilePlan/internal/unit"
)

// ErrInvalidInput reports an input dimension outside its documented range.
var ErrInvalidInput = errors.New("invalid layout input")

// HorizontalAlign selects where the horizontal leftover span goes.
type HorizontalAlign string

// VerticalAlign selects where the vertical leftover span goes.
type VerticalAlign string

const (
	AlignLeft   HorizontalAlign = "left"
	AlignCenter HorizontalAlign = "center"
	AlignRight  HorizontalAlign = "right"

	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "center"
	AlignBottom VerticalAlign = "bottom"
)

// PieceType classifies a cell by its cut status.
type PieceType string

const (
	PieceFull  PieceType = "full"  // uncut tile
	PieceLarge PieceType = "large" // cut, remaining area >= 50% of nominal
	PieceSmall PieceType = "small" // cut, remaining area < 50% of nominal
	PieceSplit PieceType = "split" // produced by splitting a parent cell
)

// Input describes one surface to lay out. All lengths are MicroUnits.
type Input struct {
	AreaWidth  unit.MicroUnit `json:"area_width"`
	AreaHeight unit.MicroUnit `json:"area_height"`
	TileWidth  unit.MicroUnit `json:"tile_width"`
	TileHeight unit.MicroUnit `json:"tile_height"`
	Gap        unit.MicroUnit `json:"gap"`

	Horizontal HorizontalAlign `json:"horizontal"`
	Vertical   VerticalAlign   `json:"vertical"`

	Pattern pattern.Pattern `json:"pattern"`
	// OffsetPerMille supplies the offset ratio for patterns with a
	// caller-chosen offset (0-1000). Ignored for fixed-offset patterns.
	OffsetPerMille int `json:"offset_per_mille,omitempty"`
}

// Validate checks every dimension against its documented range.
func (in Input) Validate() error {
	if err := unit.ValidateArea(in.AreaWidth); err != nil {
		return fmt.Errorf("area width: %w", errors.Join(ErrInvalidInput, err))
	}
	if err := unit.ValidateArea(in.AreaHeight); err != nil {
		return fmt.Errorf("area height: %w", errors.Join(ErrInvalidInput, err))
	}
	if err := unit.ValidateTile(in.TileWidth); err != nil {
		return fmt.Errorf("tile width: %w", errors.Join(ErrInvalidInput, err))
	}
	if err := unit.ValidateTile(in.TileHeight); err != nil {
		return fmt.Errorf("tile height: %w", errors.Join(ErrInvalidInput, err))
	}
	if err := unit.ValidateGap(in.Gap); err != nil {
		return fmt.Errorf("gap: %w", errors.Join(ErrInvalidInput, err))
	}
	switch in.Horizontal {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		return fmt.Errorf("horizontal alignment %q: %w", in.Horizontal, ErrInvalidInput)
	}
	switch in.Vertical {
	case AlignTop, AlignMiddle, AlignBottom:
	default:
		return fmt.Errorf("vertical alignment %q: %w", in.Vertical, ErrInvalidInput)
	}
	if _, err := pattern.Parse(string(in.Pattern)); err != nil {
		return err
	}
	return nil
}

// Cell is one tile position in the grid. The geometric identity (id, row,
// col, position, size, piece type, lineage) is fixed at creation; the editing
// state (rotation aside, visibility, masks, lock) is owned by the editing
// model. Cells are never deleted, only hidden.
type Cell struct {
	ID     string         `json:"id"`
	Row    int            `json:"row"`
	Col    int            `json:"col"`
	X      unit.MicroUnit `json:"x"`
	Y      unit.MicroUnit `json:"y"`
	Width  unit.MicroUnit `json:"width"`
	Height unit.MicroUnit `json:"height"`
	Piece  PieceType      `json:"piece"`

	// Split lineage. Empty for cells produced by the layout engine.
	IsSplit    bool   `json:"is_split,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
	SplitRatio []int  `json:"split_ratio,omitempty"`

	// Editing state.
	Rotation unit.DeciDegree `json:"rotation"`
	Visible  bool            `json:"visible"`
	MaskedBy []string        `json:"masked_by,omitempty"`
	Locked   bool            `json:"locked,omitempty"`
}

// Hidden reports whether the cell is currently hidden, either explicitly
// (split parents, user toggles) or by at least one mask shape.
func (c *Cell) Hidden() bool {
	return !c.Visible || len(c.MaskedBy) > 0
}

// Result is the complete layout for one surface. The matrix is row-major and
// rectangular: every row holds exactly ColCount cells.
type Result struct {
	Input Input `json:"input"`

	Cells [][]Cell `json:"cells"`

	RowCount int `json:"row_count"`
	ColCount int `json:"col_count"`

	// GridAngle is the whole-grid rotation the pattern demands (450 for
	// diagonal patterns, 0 otherwise). Cell coordinates stay grid-local;
	// renderers rotate the finished matrix as one unit.
	GridAngle unit.DeciDegree `json:"grid_angle"`

	TotalTileCount  int `json:"total_tile_count"`
	FullTileCount   int `json:"full_tile_count"`
	LargePieceCount int `json:"large_piece_count"`
	SmallPieceCount int `json:"small_piece_count"`

	// Representative cut-piece dimensions; edge cells are uniform per axis,
	// so one pair per classification is enough.
	LargePieceWidth  unit.MicroUnit `json:"large_piece_width,omitempty"`
	LargePieceHeight unit.MicroUnit `json:"large_piece_height,omitempty"`
	SmallPieceWidth  unit.MicroUnit `json:"small_piece_width,omitempty"`
	SmallPieceHeight unit.MicroUnit `json:"small_piece_height,omitempty"`

	// Edge remainders, used by CENTER alignment to position the grid.
	RemainderLeft   unit.MicroUnit `json:"remainder_left"`
	RemainderRight  unit.MicroUnit `json:"remainder_right"`
	RemainderTop    unit.MicroUnit `json:"remainder_top"`
	RemainderBottom unit.MicroUnit `json:"remainder_bottom"`
}

// axisPlan holds the per-axis division of a span into full tiles plus
// a leftover distributed by alignment.
type axisPlan struct {
	fullCount int
	leftover  unit.MicroUnit
	leading   unit.MicroUnit // remainder before the first full tile
	trailing  unit.MicroUnit // remainder after the last full tile
}

// planAxis divides span by (tile+gap) and distributes the leftover.
// leadingAligned means the alignment anchors the grid at the leading edge
// (LEFT/TOP), center splits the leftover with the larger half trailing.
func planAxis(span, tile, gap unit.MicroUnit, leading, center bool) axisPlan {
	pitch := tile + gap
	p := axisPlan{
		fullCount: int(span / pitch),
		leftover:  span % pitch,
	}
	switch {
	case center:
		p.leading = p.leftover / 2
		p.trailing = p.leftover - p.leading // larger half trails when odd
	case leading:
		p.trailing = p.leftover
	default:
		p.leading = p.leftover
	}
	return p
}

// classify applies the remaining-area rule: uncut is FULL, otherwise the
// ratio of remaining to nominal area decides LARGE vs SMALL. Cells cut on
// both axes use the same area ratio, applied uniformly.
func classify(w, h, nominalW, nominalH unit.MicroUnit) PieceType {
	if w == nominalW && h == nominalH {
		return PieceFull
	}
	// Compare w*h/(nominalW*nominalH) >= 1/2 without overflow or floats:
	// 2*w*h >= nominalW*nominalH. Dimensions are bounded well below 2^31
	// micro-units, so the products fit in int64.
	if 2*int64(w)*int64(h) >= int64(nominalW)*int64(nominalH) {
		return PieceLarge
	}
	return PieceSmall
}

// NewCellID returns a fresh short cell identifier.
func NewCellID() string {
	return uuid.New().String()[:8]
}

// Compute produces the full layout for in. It validates first and returns no
// partial result on failure.
func Compute(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	cols := planAxis(in.AreaWidth, in.TileWidth, in.Gap,
		in.Horizontal == AlignLeft, in.Horizontal == AlignCenter)
	rows := planAxis(in.AreaHeight, in.TileHeight, in.Gap,
		in.Vertical == AlignTop, in.Vertical == AlignMiddle)

	colCount := cols.fullCount
	if cols.leftover > 0 {
		colCount++
	}
	rowCount := rows.fullCount
	if rows.leftover > 0 {
		rowCount++
	}

	res := &Result{
		Input:           in,
		RowCount:        rowCount,
		ColCount:        colCount,
		RemainderLeft:   cols.leading,
		RemainderRight:  cols.trailing,
		RemainderTop:    rows.leading,
		RemainderBottom: rows.trailing,
		Cells:           make([][]Cell, 0, rowCount),
	}

	pitchX := in.TileWidth + in.Gap
	pitchY := in.TileHeight + in.Gap

	for r := 0; r < rowCount; r++ {
		row := make([]Cell, 0, colCount)
		for c := 0; c < colCount; c++ {
			w := in.TileWidth
			if c == cols.fullCount {
				w = cols.leftover
			}
			h := in.TileHeight
			if r == rows.fullCount {
				h = rows.leftover
			}

			d, err := directiveAt(in, r, c)
			if err != nil {
				return nil, err
			}
			res.GridAngle = d.GridAngle

			cell := Cell{
				ID:       NewCellID(),
				Row:      r,
				Col:      c,
				X:        cols.leading + unit.MicroUnit(c)*pitchX + d.Offset,
				Y:        rows.leading + unit.MicroUnit(r)*pitchY,
				Width:    w,
				Height:   h,
				Piece:    classify(w, h, in.TileWidth, in.TileHeight),
				Rotation: d.Rotation,
				Visible:  true,
			}
			row = append(row, cell)

			switch cell.Piece {
			case PieceFull:
				res.FullTileCount++
			case PieceLarge:
				res.LargePieceCount++
				res.LargePieceWidth = w
				res.LargePieceHeight = h
			case PieceSmall:
				res.SmallPieceCount++
				res.SmallPieceWidth = w
				res.SmallPieceHeight = h
			}
			res.TotalTileCount++
		}
		res.Cells = append(res.Cells, row)
	}

	return res, nil
}

// directiveAt resolves the pattern directive for one matrix slot. Paired
// patterns return two descriptors per logical position; the pair occupies two
// adjacent columns, assigned by column parity, which keeps the matrix
// rectangular.
func directiveAt(in Input, row, col int) (pattern.Directive, error) {
	p := in.Pattern
	logicalCol := col
	if p.IsPaired() {
		logicalCol = col / 2
	}
	ds, err := pattern.DirectiveFor(p, row, logicalCol, in.TileWidth, in.TileHeight, in.OffsetPerMille)
	if err != nil {
		return pattern.Directive{}, err
	}
	if p.IsPaired() && col%2 == 1 && len(ds) > 1 {
		return ds[1], nil
	}
	return ds[0], nil
}

// VisibleCells returns the currently visible cells in row-major order.
func (r *Result) VisibleCells() []*Cell {
	var out []*Cell
	for i := range r.Cells {
		for j := range r.Cells[i] {
			c := &r.Cells[i][j]
			if !c.Hidden() {
				out = append(out, c)
			}
		}
	}
	return out
}

// Bounds returns the covered surface extent (the input area).
func (r *Result) Bounds() (w, h unit.MicroUnit) {
	return r.Input.AreaWidth, r.Input.AreaHeight
}
