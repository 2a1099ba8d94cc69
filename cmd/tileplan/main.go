// TilePlan — tile layout calculator
//
// Computes how many tiles of a given size cover a rectangular surface,
// classifies every piece as full or cut, and exports the result as PDF,
// XLSX, DXF, or QR-coded cut labels.
//
// Build:
//   go build -o tileplan ./cmd/tileplan

package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tileplan",
		Short: "Tile layout calculator for rectangular surfaces",
	}

	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(materialsCmd())
	rootCmd.AddCommand(importCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// layoutFlags holds the shared surface/tile flag set.
type layoutFlags struct {
	areaWidth  int64
	areaHeight int64
	tileWidth  int64
	tileHeight int64
	gapTenths  int64
	hAlign     string
	vAlign     string
	pattern    string
	offset     int
}

func addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	cmd.Flags().Int64Var(&f.areaWidth, "area-width", 0, "surface width in mm (required)")
	cmd.Flags().Int64Var(&f.areaHeight, "area-height", 0, "surface height in mm (required)")
	cmd.Flags().Int64Var(&f.tileWidth, "tile-width", 0, "tile width in mm (default from config)")
	cmd.Flags().Int64Var(&f.tileHeight, "tile-height", 0, "tile height in mm (default from config)")
	cmd.Flags().Int64Var(&f.gapTenths, "gap", -1, "grout gap in 0.1 mm steps (default from config)")
	cmd.Flags().StringVar(&f.hAlign, "align-h", "left", "horizontal start line: left|center|right")
	cmd.Flags().StringVar(&f.vAlign, "align-v", "top", "vertical start line: top|center|bottom")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "layout pattern (default from config)")
	cmd.Flags().IntVar(&f.offset, "offset", 500, "custom offset in per-mille for offset patterns")
}

func computeCmd() *cobra.Command {
	var f layoutFlags
	var pdfOut, xlsxOut, dxfOut, labelsOut, jsonOut string
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the tile grid for one surface",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCompute(f, exportTargets{
				pdf:    pdfOut,
				xlsx:   xlsxOut,
				dxf:    dxfOut,
				labels: labelsOut,
				json:   jsonOut,
			})
		},
	}
	addLayoutFlags(cmd, &f)
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "write a PDF drawing to this path")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "write a cut-list workbook to this path")
	cmd.Flags().StringVar(&dxfOut, "dxf", "", "write DXF geometry to this path")
	cmd.Flags().StringVar(&labelsOut, "labels", "", "write QR cut labels PDF to this path")
	cmd.Flags().StringVar(&jsonOut, "json", "", "write the raw result as JSON to this path")
	return cmd
}

func patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the supported layout patterns",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPatterns()
		},
	}
}

func materialsCmd() *cobra.Command {
	var f layoutFlags
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Estimate joint tape, silicone, and corner angles for a surface",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMaterials(f)
		},
	}
	addLayoutFlags(cmd, &f)
	return cmd
}

func importCmd() *cobra.Command {
	var f layoutFlags
	cmd := &cobra.Command{
		Use:   "import [surface-list]",
		Short: "Batch-compute every surface in a CSV or XLSX list",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runImport(args[0], f)
		},
	}
	addLayoutFlags(cmd, &f)
	return cmd
}
