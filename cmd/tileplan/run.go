package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/TilePlan/internal/export"
	"github.com/piwi3910/TilePlan/internal/importer"
	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/materials"
	"github.com/piwi3910/TilePlan/internal/pattern"
	"github.com/piwi3910/TilePlan/internal/project"
	"github.com/piwi3910/TilePlan/internal/unit"
)

type exportTargets struct {
	pdf    string
	xlsx   string
	dxf    string
	labels string
	json   string
}

// buildInput merges flag values with the persisted app config defaults.
func buildInput(f layoutFlags) (layout.Input, error) {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return layout.Input{}, fmt.Errorf("loading config: %w", err)
	}

	if f.tileWidth == 0 {
		f.tileWidth = cfg.DefaultTileWidthMM
	}
	if f.tileHeight == 0 {
		f.tileHeight = cfg.DefaultTileHeightMM
	}
	if f.gapTenths < 0 {
		f.gapTenths = cfg.DefaultGapTenthMM
	}
	if f.pattern == "" {
		f.pattern = string(cfg.DefaultPattern)
	}

	aw, err := unit.FromMM(f.areaWidth)
	if err != nil {
		return layout.Input{}, fmt.Errorf("area width: %w", err)
	}
	ah, err := unit.FromMM(f.areaHeight)
	if err != nil {
		return layout.Input{}, fmt.Errorf("area height: %w", err)
	}
	tw, err := unit.FromMM(f.tileWidth)
	if err != nil {
		return layout.Input{}, fmt.Errorf("tile width: %w", err)
	}
	th, err := unit.FromMM(f.tileHeight)
	if err != nil {
		return layout.Input{}, fmt.Errorf("tile height: %w", err)
	}
	gap, err := unit.FromTenthMM(f.gapTenths)
	if err != nil {
		return layout.Input{}, fmt.Errorf("gap: %w", err)
	}
	p, err := pattern.Parse(f.pattern)
	if err != nil {
		return layout.Input{}, err
	}

	return layout.Input{
		AreaWidth:      aw,
		AreaHeight:     ah,
		TileWidth:      tw,
		TileHeight:     th,
		Gap:            gap,
		Horizontal:     layout.HorizontalAlign(f.hAlign),
		Vertical:       layout.VerticalAlign(f.vAlign),
		Pattern:        p,
		OffsetPerMille: f.offset,
	}, nil
}

func runCompute(f layoutFlags, targets exportTargets) error {
	in, err := buildInput(f)
	if err != nil {
		return err
	}
	res, err := layout.Compute(in)
	if err != nil {
		return err
	}
	est := materials.Calculate(res, nil, nil)

	printResult("Surface", res, est)

	if targets.json != "" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		if err := os.WriteFile(targets.json, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", targets.json, err)
		}
		fmt.Printf("Wrote %s\n", targets.json)
	}
	if targets.pdf != "" {
		if err := export.ExportPDF(targets.pdf, "Surface", res, est); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", targets.pdf)
	}
	if targets.xlsx != "" {
		if err := export.ExportXLSX(targets.xlsx, "Surface", res, est); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", targets.xlsx)
	}
	if targets.dxf != "" {
		if err := export.ExportDXF(targets.dxf, res); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", targets.dxf)
	}
	if targets.labels != "" {
		if err := export.ExportLabels(targets.labels, res); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", targets.labels)
	}
	return nil
}

func runPatterns() error {
	for _, p := range pattern.All {
		notes := []string{}
		if p.IsVertical() {
			notes = append(notes, "vertical")
		}
		if p.IsDiagonal() {
			notes = append(notes, "45 degree grid")
		}
		if p.IsPaired() {
			notes = append(notes, "paired orientations")
		}
		if p.HasCustomOffset() {
			notes = append(notes, "custom offset")
		}
		line := string(p)
		for i, n := range notes {
			if i == 0 {
				line += "  (" + n
			} else {
				line += ", " + n
			}
		}
		if len(notes) > 0 {
			line += ")"
		}
		fmt.Println(line)
	}
	return nil
}

func runMaterials(f layoutFlags) error {
	in, err := buildInput(f)
	if err != nil {
		return err
	}
	res, err := layout.Compute(in)
	if err != nil {
		return err
	}
	est := materials.Calculate(res, nil, nil)
	printMaterials(est)
	return nil
}

func runImport(path string, f layoutFlags) error {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	defaults := importer.Defaults{
		TileWidth:  unit.MicroUnit(cfg.DefaultTileWidthMM) * unit.MicroPerMM,
		TileHeight: unit.MicroUnit(cfg.DefaultTileHeightMM) * unit.MicroPerMM,
		Gap:        unit.MicroUnit(cfg.DefaultGapTenthMM) * unit.GapStepMicro,
		Pattern:    cfg.DefaultPattern,
	}
	if f.tileWidth > 0 {
		defaults.TileWidth = unit.MicroUnit(f.tileWidth) * unit.MicroPerMM
	}
	if f.tileHeight > 0 {
		defaults.TileHeight = unit.MicroUnit(f.tileHeight) * unit.MicroPerMM
	}
	if f.gapTenths >= 0 {
		defaults.Gap = unit.MicroUnit(f.gapTenths) * unit.GapStepMicro
	}
	if f.pattern != "" {
		p, err := pattern.Parse(f.pattern)
		if err != nil {
			return err
		}
		defaults.Pattern = p
	}

	result := importer.Import(path, defaults)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("import failed")
	}

	for _, s := range result.Surfaces {
		res, err := layout.Compute(s.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", s.Label, err)
			continue
		}
		est := materials.Calculate(res, nil, nil)
		printResult(s.Label, res, est)
		fmt.Println()
	}
	return nil
}
