package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/materials"
	"github.com/piwi3910/TilePlan/internal/unit"
)

// ExportXLSX writes a cut-list workbook: one sheet with the per-piece rows
// and one with the aggregate counts and materials estimate.
func ExportXLSX(path, name string, res *layout.Result, est materials.Estimate) error {
	if res == nil || res.TotalTileCount == 0 {
		return fmt.Errorf("no layout to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const cutList = "Cut List"
	if err := f.SetSheetName("Sheet1", cutList); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Cell", "Row", "Col", "Piece", "Width (mm)", "Height (mm)", "X (mm)", "Y (mm)", "Rotation", "Visible"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(cutList, cell, h); err != nil {
			return err
		}
	}

	rowNum := 2
	for i := range res.Cells {
		for j := range res.Cells[i] {
			c := &res.Cells[i][j]
			values := []any{
				c.ID, c.Row, c.Col, string(c.Piece),
				unit.FormatMM(c.Width), unit.FormatMM(c.Height),
				unit.FormatMM(c.X), unit.FormatMM(c.Y),
				c.Rotation.Degrees(), !c.Hidden(),
			}
			for k, v := range values {
				cell, err := excelize.CoordinatesToCellName(k+1, rowNum)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(cutList, cell, v); err != nil {
					return err
				}
			}
			rowNum++
		}
	}

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	summaryRows := [][2]any{
		{"Project", name},
		{"Area (mm)", unit.FormatMM(res.Input.AreaWidth) + " x " + unit.FormatMM(res.Input.AreaHeight)},
		{"Tile (mm)", unit.FormatMM(res.Input.TileWidth) + " x " + unit.FormatMM(res.Input.TileHeight)},
		{"Gap (mm)", unit.FormatMM(res.Input.Gap)},
		{"Pattern", string(res.Input.Pattern)},
		{"Grid angle (deg)", res.GridAngle.Degrees()},
		{"Columns", res.ColCount},
		{"Rows", res.RowCount},
		{"Total tiles", res.TotalTileCount},
		{"Full tiles", res.FullTileCount},
		{"Large pieces", res.LargePieceCount},
		{"Small pieces", res.SmallPieceCount},
		{"Joint tape (m)", unit.FormatM(est.TapeLength)},
		{"Tape rolls", est.TapeRolls},
		{"Silicone (m)", unit.FormatM(est.SiliconeLength)},
		{"Silicone tubes", est.SiliconeTubes},
		{"Inner corners", est.InnerCorners},
		{"Outer corners", est.OuterCorners},
	}
	for i, kv := range summaryRows {
		keyCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		valCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summary, keyCell, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summary, valCell, kv[1]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
