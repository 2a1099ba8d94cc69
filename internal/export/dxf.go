package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/TilePlan/internal/layout"
)

// ExportDXF writes the visible grid as DXF line geometry for CAD handoff.
// Each visible cell becomes four boundary lines; coordinates are emitted in
// millimeters with the drawing origin at the surface's top-left corner.
func ExportDXF(path string, res *layout.Result) error {
	cells := res.VisibleCells()
	if len(cells) == 0 {
		return fmt.Errorf("no visible cells to export")
	}

	d := dxf.NewDrawing()

	for _, c := range cells {
		x0 := mmf(c.X)
		y0 := mmf(c.Y)
		x1 := mmf(c.X + c.Width)
		y1 := mmf(c.Y + c.Height)

		d.Line(x0, y0, 0, x1, y0, 0)
		d.Line(x1, y0, 0, x1, y1, 0)
		d.Line(x1, y1, 0, x0, y1, 0)
		d.Line(x0, y1, 0, x0, y0, 0)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}
