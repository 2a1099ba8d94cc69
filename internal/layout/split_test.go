package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TilePlan/internal/unit"
)

func testCell() Cell {
	return Cell{
		ID:      NewCellID(),
		Row:     2,
		Col:     3,
		X:       100_000,
		Y:       200_000,
		Width:   600_000,
		Height:  400_000,
		Piece:   PieceFull,
		Visible: true,
	}
}

func TestSplitVerticalExactWidths(t *testing.T) {
	parent := testCell()
	children, err := Split(&parent, SplitVertical, []int{500, 500})
	require.NoError(t, err)
	require.Len(t, children, 2)

	var sum unit.MicroUnit
	for _, c := range children {
		sum += c.Width
		assert.Equal(t, parent.Height, c.Height)
		assert.Equal(t, PieceSplit, c.Piece)
		assert.True(t, c.IsSplit)
		assert.Equal(t, parent.ID, c.ParentID)
		assert.Equal(t, []int{500, 500}, c.SplitRatio)
	}
	assert.Equal(t, parent.Width, sum)
	assert.False(t, parent.Visible, "parent should be hidden, not deleted")
}

func TestSplitHorizontalRemainderToLastChild(t *testing.T) {
	parent := testCell()
	parent.Height = 1_000_001 // indivisible by three
	children, err := Split(&parent, SplitHorizontal, []int{333, 333, 334})
	require.NoError(t, err)
	require.Len(t, children, 3)

	var sum unit.MicroUnit
	for _, c := range children {
		sum += c.Height
		assert.Equal(t, parent.Width, c.Width)
	}
	assert.Equal(t, parent.Height, sum, "children must cover the parent exactly")

	// First two take the floor share; the last absorbs the remainder.
	assert.Equal(t, parent.Height*333/1000, children[0].Height)
	assert.Equal(t, parent.Height*333/1000, children[1].Height)
}

func TestSplitBothIsCrossProduct(t *testing.T) {
	parent := testCell()
	children, err := Split(&parent, SplitBoth, []int{250, 750})
	require.NoError(t, err)
	require.Len(t, children, 4)

	// Children tile the parent: widths sum per row, heights per column.
	assert.Equal(t, parent.Width, children[0].Width+children[1].Width)
	assert.Equal(t, parent.Height, children[0].Height+children[2].Height)

	// Positions stay inside the parent.
	for _, c := range children {
		assert.GreaterOrEqual(t, c.X, parent.X)
		assert.GreaterOrEqual(t, c.Y, parent.Y)
		assert.LessOrEqual(t, c.X+c.Width, parent.X+parent.Width)
		assert.LessOrEqual(t, c.Y+c.Height, parent.Y+parent.Height)
	}
}

func TestSplitChildrenInheritOrigin(t *testing.T) {
	parent := testCell()
	children, err := Split(&parent, SplitVertical, []int{1000})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, parent.Row, children[0].Row)
	assert.Equal(t, parent.Col, children[0].Col)
	assert.Equal(t, parent.X, children[0].X)
	assert.Equal(t, parent.Y, children[0].Y)
}

func TestSplitInvalidRatio(t *testing.T) {
	cases := map[string][]int{
		"empty":        {},
		"non-positive": {0, 1000},
		"negative":     {-100, 1100},
		"short sum":    {300, 300},
		"over sum":     {600, 600},
	}
	for name, ratio := range cases {
		parent := testCell()
		_, err := Split(&parent, SplitVertical, ratio)
		assert.ErrorIs(t, err, ErrInvalidRatio, name)
		assert.True(t, parent.Visible, "%s: failed split must not hide parent", name)
	}
}

func TestSplitInvalidDirection(t *testing.T) {
	parent := testCell()
	_, err := Split(&parent, "sideways", []int{500, 500})
	assert.ErrorIs(t, err, ErrInvalidRatio)
}
