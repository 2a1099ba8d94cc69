// Package export writes finished layouts to the file formats installers and
// CAD tools consume: PDF drawings, QR-coded piece labels, XLSX cut lists,
// and DXF geometry. Exports read the layout's public value objects only and
// convert MicroUnits to floating point at this display boundary.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/materials"
	"github.com/piwi3910/TilePlan/internal/unit"
)

// pieceColor represents an RGB fill color per piece classification.
type pieceColor struct {
	R, G, B int
}

var pieceColors = map[layout.PieceType]pieceColor{
	layout.PieceFull:  {R: 76, G: 175, B: 80},  // green
	layout.PieceLarge: {R: 255, G: 152, B: 0},  // orange
	layout.PieceSmall: {R: 244, G: 67, B: 54},  // red
	layout.PieceSplit: {R: 33, G: 150, B: 243}, // blue
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// mmf converts a MicroUnit to float millimeters for drawing.
func mmf(u unit.MicroUnit) float64 {
	return float64(u) / 1000.0
}

// ExportPDF generates a PDF with the grid drawing on the first page and a
// summary page with counts and the materials estimate.
func ExportPDF(path, name string, res *layout.Result, est materials.Estimate) error {
	if res == nil || res.TotalTileCount == 0 {
		return fmt.Errorf("no layout to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderGridPage(pdf, name, res)

	pdf.AddPage()
	renderSummaryPage(pdf, name, res, est)

	return pdf.OutputFileAndClose(path)
}

// renderGridPage draws the scaled tile grid on the current page.
func renderGridPage(pdf *fpdf.Fpdf, name string, res *layout.Result) {
	areaW := mmf(res.Input.AreaWidth)
	areaH := mmf(res.Input.AreaHeight)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s x %s mm, tile %s x %s mm, gap %s mm",
		name,
		unit.FormatMM(res.Input.AreaWidth), unit.FormatMM(res.Input.AreaHeight),
		unit.FormatMM(res.Input.TileWidth), unit.FormatMM(res.Input.TileHeight),
		unit.FormatMM(res.Input.Gap))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tiles: %d | Full: %d | Large: %d | Small: %d | Pattern: %s",
		res.TotalTileCount, res.FullTileCount, res.LargePieceCount, res.SmallPieceCount,
		res.Input.Pattern)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := drawWidth / areaW
	if s := drawHeight / areaH; s < scale {
		scale = s
	}

	canvasW := areaW * scale
	canvasH := areaH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Surface background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Visible cells, colored by classification
	for _, c := range res.VisibleCells() {
		col, ok := pieceColors[c.Piece]
		if !ok {
			col = pieceColor{R: 180, G: 180, B: 180}
		}
		cx := offsetX + mmf(c.X)*scale
		cy := offsetY + mmf(c.Y)*scale
		cw := mmf(c.Width) * scale
		ch := mmf(c.Height) * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(cx, cy, cw, ch, "FD")
	}

	drawLegend(pdf, res, offsetY+canvasH+5)
}

// drawLegend renders the piece classification legend below the grid.
func drawLegend(pdf *fpdf.Fpdf, res *layout.Result, y float64) {
	entries := []struct {
		piece layout.PieceType
		text  string
	}{
		{layout.PieceFull, fmt.Sprintf("Full (%d)", res.FullTileCount)},
		{layout.PieceLarge, fmt.Sprintf("Large cut (%d)", res.LargePieceCount)},
		{layout.PieceSmall, fmt.Sprintf("Small cut (%d)", res.SmallPieceCount)},
	}
	x := marginLeft
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, e := range entries {
		col := pieceColors[e.piece]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(x, y, 4, 4, "FD")
		pdf.SetXY(x+5, y)
		pdf.CellFormat(40, 4, e.text, "", 0, "L", false, 0, "")
		x += 50
	}
}

// renderSummaryPage lists the counts, cut dimensions, remainders, and
// supplementary materials.
func renderSummaryPage(pdf *fpdf.Fpdf, name string, res *layout.Result, est materials.Estimate) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, name+" - Summary", "", 0, "L", false, 0, "")

	lines := []string{
		fmt.Sprintf("Grid: %d columns x %d rows", res.ColCount, res.RowCount),
	}
	if res.GridAngle != 0 {
		lines = append(lines, fmt.Sprintf("Grid angle: %s degrees", res.GridAngle.Degrees()))
	}
	lines = append(lines,
		fmt.Sprintf("Total tiles: %d", res.TotalTileCount),
		fmt.Sprintf("Full tiles: %d", res.FullTileCount),
		fmt.Sprintf("Large pieces: %d (%s x %s mm)", res.LargePieceCount,
			unit.FormatMM(res.LargePieceWidth), unit.FormatMM(res.LargePieceHeight)),
		fmt.Sprintf("Small pieces: %d (%s x %s mm)", res.SmallPieceCount,
			unit.FormatMM(res.SmallPieceWidth), unit.FormatMM(res.SmallPieceHeight)),
		fmt.Sprintf("Remainders L/R/T/B: %s / %s / %s / %s mm",
			unit.FormatMM(res.RemainderLeft), unit.FormatMM(res.RemainderRight),
			unit.FormatMM(res.RemainderTop), unit.FormatMM(res.RemainderBottom)),
		"",
		fmt.Sprintf("Joint tape: %s m (%d rolls)", unit.FormatM(est.TapeLength), est.TapeRolls),
		fmt.Sprintf("Silicone: %s m (%d tubes)", unit.FormatM(est.SiliconeLength), est.SiliconeTubes),
		fmt.Sprintf("Corner angles: %d inner, %d outer", est.InnerCorners, est.OuterCorners),
	)

	pdf.SetFont("Helvetica", "", 10)
	y := marginTop + headerHeight + 5
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")
		y += 6
	}
}
