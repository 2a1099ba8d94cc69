package main

import (
	"fmt"

	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/materials"
	"github.com/piwi3910/TilePlan/internal/unit"
)

func printResult(label string, res *layout.Result, est materials.Estimate) {
	fmt.Printf("%s: %s x %s mm, tile %s x %s mm, gap %s mm, pattern %s\n",
		label,
		unit.FormatMM(res.Input.AreaWidth), unit.FormatMM(res.Input.AreaHeight),
		unit.FormatMM(res.Input.TileWidth), unit.FormatMM(res.Input.TileHeight),
		unit.FormatMM(res.Input.Gap), res.Input.Pattern)
	fmt.Printf("  grid: %d columns x %d rows (%d tiles)\n", res.ColCount, res.RowCount, res.TotalTileCount)
	if res.GridAngle != 0 {
		fmt.Printf("  grid angle: %s degrees\n", res.GridAngle.Degrees())
	}
	fmt.Printf("  full: %d\n", res.FullTileCount)
	if res.LargePieceCount > 0 {
		fmt.Printf("  large cuts: %d (%s x %s mm)\n", res.LargePieceCount,
			unit.FormatMM(res.LargePieceWidth), unit.FormatMM(res.LargePieceHeight))
	}
	if res.SmallPieceCount > 0 {
		fmt.Printf("  small cuts: %d (%s x %s mm)\n", res.SmallPieceCount,
			unit.FormatMM(res.SmallPieceWidth), unit.FormatMM(res.SmallPieceHeight))
	}
	fmt.Printf("  remainders l/r/t/b: %s / %s / %s / %s mm\n",
		unit.FormatMM(res.RemainderLeft), unit.FormatMM(res.RemainderRight),
		unit.FormatMM(res.RemainderTop), unit.FormatMM(res.RemainderBottom))
	printMaterials(est)
}

func printMaterials(est materials.Estimate) {
	fmt.Printf("  joint tape: %s m (%d rolls)\n", unit.FormatM(est.TapeLength), est.TapeRolls)
	fmt.Printf("  silicone: %s m (%d tubes)\n", unit.FormatM(est.SiliconeLength), est.SiliconeTubes)
	fmt.Printf("  corner angles: %d inner, %d outer\n", est.InnerCorners, est.OuterCorners)
}
