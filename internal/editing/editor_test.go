package editing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TilePlan/internal/history"
	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/pattern"
)

// testEditor builds a 4x4 grid of 100 mm tiles with no gap.
func testEditor(t *testing.T) (*Editor, *layout.Result) {
	t.Helper()
	res, err := layout.Compute(layout.Input{
		AreaWidth:  400_000,
		AreaHeight: 400_000,
		TileWidth:  100_000,
		TileHeight: 100_000,
		Gap:        0,
		Horizontal: layout.AlignLeft,
		Vertical:   layout.AlignTop,
		Pattern:    pattern.LinearSquare,
	})
	require.NoError(t, err)
	require.Equal(t, 16, res.TotalTileCount)
	return NewEditor(res, 10), res
}

// smallRect covers only the top-left cell (its center point).
func smallRect() Shape {
	return Shape{
		Kind:   ShapeRectangle,
		Origin: Point{10_000, 10_000},
		Width:  50_000,
		Height: 50_000,
	}
}

func TestSetVisibilityRoundTrip(t *testing.T) {
	e, res := testEditor(t)
	id := res.Cells[0][0].ID

	affected, err := e.SetVisibility(id, false)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, affected)

	c, err := e.Cell(id)
	require.NoError(t, err)
	assert.True(t, c.Hidden())

	affected, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []string{id}, affected)
	c, _ = e.Cell(id)
	assert.False(t, c.Hidden(), "undo must restore the prior state")

	_, err = e.Redo()
	require.NoError(t, err)
	c, _ = e.Cell(id)
	assert.True(t, c.Hidden(), "redo must restore the operation's state")
}

func TestSetVisibilityUnknownCell(t *testing.T) {
	e, _ := testEditor(t)
	_, err := e.SetVisibility("nope", false)
	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.False(t, e.CanUndo(), "failed call must not record a command")
}

func TestSetLock(t *testing.T) {
	e, res := testEditor(t)
	id := res.Cells[1][1].ID

	_, err := e.SetLock(id, true)
	require.NoError(t, err)
	c, _ := e.Cell(id)
	assert.True(t, c.Locked)

	_, err = e.Undo()
	require.NoError(t, err)
	c, _ = e.Cell(id)
	assert.False(t, c.Locked)
}

func TestApplyShapeMasksCoveredCells(t *testing.T) {
	e, res := testEditor(t)
	target := res.Cells[0][0].ID

	shapeID, affected, err := e.ApplyShape(smallRect())
	require.NoError(t, err)
	assert.NotEmpty(t, shapeID)
	assert.Equal(t, []string{target}, affected)

	c, _ := e.Cell(target)
	assert.True(t, c.Hidden())
	assert.Equal(t, []string{shapeID}, c.MaskedBy)
}

func TestMaskReferenceCounting(t *testing.T) {
	e, res := testEditor(t)
	target := res.Cells[0][0].ID

	first, _, err := e.ApplyShape(smallRect())
	require.NoError(t, err)
	second, _, err := e.ApplyShape(Shape{
		Kind:   ShapeRectangle,
		Origin: Point{0, 0},
		Width:  55_000,
		Height: 55_000,
	})
	require.NoError(t, err)

	// Removing one of two overlapping shapes keeps the cell hidden.
	_, err = e.RemoveShape(first)
	require.NoError(t, err)
	c, _ := e.Cell(target)
	assert.True(t, c.Hidden(), "cell still masked by the second shape")
	assert.Equal(t, []string{second}, c.MaskedBy)

	// Removing the last shape restores visibility.
	_, err = e.RemoveShape(second)
	require.NoError(t, err)
	c, _ = e.Cell(target)
	assert.False(t, c.Hidden())
	assert.Empty(t, c.MaskedBy)
}

func TestRemoveShapeUndoRedo(t *testing.T) {
	e, res := testEditor(t)
	target := res.Cells[0][0].ID

	shapeID, _, err := e.ApplyShape(smallRect())
	require.NoError(t, err)
	_, err = e.RemoveShape(shapeID)
	require.NoError(t, err)

	// Undo the removal: the mask comes back.
	_, err = e.Undo()
	require.NoError(t, err)
	c, _ := e.Cell(target)
	assert.True(t, c.Hidden())

	// Undo the application: back to the initial state.
	_, err = e.Undo()
	require.NoError(t, err)
	c, _ = e.Cell(target)
	assert.False(t, c.Hidden())

	// Redo both.
	_, err = e.Redo()
	require.NoError(t, err)
	c, _ = e.Cell(target)
	assert.True(t, c.Hidden())
	_, err = e.Redo()
	require.NoError(t, err)
	c, _ = e.Cell(target)
	assert.False(t, c.Hidden())
}

func TestRemoveShapeUnknown(t *testing.T) {
	e, _ := testEditor(t)
	_, err := e.RemoveShape("nope")
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestCircleShapeCoversCenterCell(t *testing.T) {
	e, res := testEditor(t)
	target := res.Cells[2][2].ID

	_, affected, err := e.ApplyShape(Shape{
		Kind:   ShapeCircle,
		Origin: Point{250_000, 250_000},
		Radius: 30_000,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{target}, affected)
}

func TestLineShapeCrossesRow(t *testing.T) {
	e, res := testEditor(t)

	_, affected, err := e.ApplyShape(Shape{
		Kind:   ShapeLine,
		Points: []Point{{0, 150_000}, {400_000, 150_000}},
	})
	require.NoError(t, err)
	require.Len(t, affected, 4, "a horizontal line through row 1 masks its four cells")
	for i, id := range affected {
		assert.Equal(t, res.Cells[1][i].ID, id)
	}
}

func TestPolygonShapeSwallowsInteriorCells(t *testing.T) {
	e, _ := testEditor(t)

	// A triangle around the whole surface: every cell is inside, few are
	// touched by an edge.
	_, affected, err := e.ApplyShape(Shape{
		Kind: ShapePolygon,
		Points: []Point{
			{-100_000, -100_000},
			{900_000, -100_000},
			{-100_000, 900_000},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, affected)
}

func TestSplitThroughEditor(t *testing.T) {
	e, res := testEditor(t)
	parent := res.Cells[0][0].ID

	affected, err := e.Split(parent, layout.SplitVertical, []int{500, 500})
	require.NoError(t, err)
	require.Len(t, affected, 3, "parent plus two children")
	assert.Equal(t, parent, affected[0])

	p, _ := e.Cell(parent)
	assert.True(t, p.Hidden(), "split parent is hidden, not deleted")
	for _, id := range affected[1:] {
		c, err := e.Cell(id)
		require.NoError(t, err)
		assert.False(t, c.Hidden())
		assert.Equal(t, layout.PieceSplit, c.Piece)
		assert.Equal(t, parent, c.ParentID)
	}

	// Undo restores the parent and hides the children.
	_, err = e.Undo()
	require.NoError(t, err)
	p, _ = e.Cell(parent)
	assert.False(t, p.Hidden())
	for _, id := range affected[1:] {
		c, _ := e.Cell(id)
		assert.True(t, c.Hidden(), "children stay addressable but hidden after undo")
	}

	// Redo re-applies the split.
	_, err = e.Redo()
	require.NoError(t, err)
	p, _ = e.Cell(parent)
	assert.True(t, p.Hidden())
}

func TestSplitInvalidRatioLeavesNoTrace(t *testing.T) {
	e, res := testEditor(t)
	parent := res.Cells[0][0].ID

	_, err := e.Split(parent, layout.SplitVertical, []int{300, 300})
	assert.ErrorIs(t, err, layout.ErrInvalidRatio)
	assert.False(t, e.CanUndo())

	p, _ := e.Cell(parent)
	assert.False(t, p.Hidden())
}

func TestUndoEmpty(t *testing.T) {
	e, _ := testEditor(t)
	_, err := e.Undo()
	assert.ErrorIs(t, err, history.ErrEmptyHistory)
	_, err = e.Redo()
	assert.ErrorIs(t, err, history.ErrEmptyHistory)
}

func TestVisibleCellsTracksEdits(t *testing.T) {
	e, res := testEditor(t)
	require.Len(t, e.VisibleCells(), 16)

	_, _, err := e.ApplyShape(smallRect())
	require.NoError(t, err)
	assert.Len(t, e.VisibleCells(), 15)

	_, err = e.Split(res.Cells[1][1].ID, layout.SplitBoth, []int{500, 500})
	require.NoError(t, err)
	// One cell hidden by mask, one parent hidden, four children added.
	assert.Len(t, e.VisibleCells(), 18)
}
