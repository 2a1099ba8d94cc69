// Package unit provides the integer length and angle units used throughout
// the calculator. All geometry is expressed in MicroUnits (1/1000 mm) so that
// layout arithmetic never touches floating point; formatting for display is
// the only place fractional text appears.
package unit

import (
	"errors"
	"fmt"
)

// MicroUnit is a length in 1/1000 of a millimeter.
type MicroUnit int64

// DeciDegree is an angle in 1/10 of a degree.
type DeciDegree int32

// MicroPerMM is the number of MicroUnits in one millimeter.
const MicroPerMM MicroUnit = 1000

// Tile rotation values. Tiles only ever rotate in quarter turns; other angle
// measurements (grid rotation, corner angles) may take any DeciDegree value.
const (
	Rot0   DeciDegree = 0
	Rot90  DeciDegree = 900
	Rot180 DeciDegree = 1800
	Rot270 DeciDegree = 2700
)

// Supported input magnitudes, in millimeters.
const (
	MaxAreaMM = 99_999_999
	MaxTileMM = 9_999
	MaxGapMM  = 50
)

// GapStepMicro is the granularity of gap sizes: 0.1 mm.
const GapStepMicro MicroUnit = 100

// ErrOutOfRange reports a conversion input outside the supported magnitude.
var ErrOutOfRange = errors.New("value out of supported range")

// FromMM converts whole millimeters to MicroUnits.
func FromMM(mm int64) (MicroUnit, error) {
	if mm < -MaxAreaMM || mm > MaxAreaMM {
		return 0, fmt.Errorf("%d mm: %w", mm, ErrOutOfRange)
	}
	return MicroUnit(mm) * MicroPerMM, nil
}

// FromTenthMM converts tenths of a millimeter to MicroUnits. Gap sizes are
// entered in 0.1 mm steps.
func FromTenthMM(tenths int64) (MicroUnit, error) {
	if tenths < -MaxAreaMM*10 || tenths > MaxAreaMM*10 {
		return 0, fmt.Errorf("%d tenth-mm: %w", tenths, ErrOutOfRange)
	}
	return MicroUnit(tenths) * GapStepMicro, nil
}

// ValidateArea checks an area dimension against the supported range.
func ValidateArea(u MicroUnit) error {
	if u <= 0 || u > MaxAreaMM*MicroPerMM {
		return fmt.Errorf("area dimension %s mm: %w", FormatMM(u), ErrOutOfRange)
	}
	return nil
}

// ValidateTile checks a tile dimension against the supported range.
func ValidateTile(u MicroUnit) error {
	if u <= 0 || u > MaxTileMM*MicroPerMM {
		return fmt.Errorf("tile dimension %s mm: %w", FormatMM(u), ErrOutOfRange)
	}
	return nil
}

// ValidateGap checks a gap size: 0–50 mm in 0.1 mm steps.
func ValidateGap(u MicroUnit) error {
	if u < 0 || u > MaxGapMM*MicroPerMM {
		return fmt.Errorf("gap %s mm: %w", FormatMM(u), ErrOutOfRange)
	}
	if u%GapStepMicro != 0 {
		return fmt.Errorf("gap %s mm is not a 0.1 mm step: %w", FormatMM(u), ErrOutOfRange)
	}
	return nil
}

// MM returns the whole-millimeter part of u, truncated toward zero.
func (u MicroUnit) MM() int64 {
	return int64(u / MicroPerMM)
}

// FormatMM renders u as millimeters, trimming to at most three decimals.
// This is the display boundary; nothing downstream should parse it back.
func FormatMM(u MicroUnit) string {
	return formatScaled(int64(u), int64(MicroPerMM), 3)
}

// FormatM renders u as meters with up to three decimals.
func FormatM(u MicroUnit) string {
	return formatScaled(int64(u), 1_000_000, 3)
}

// Degrees renders d as whole or fractional degrees.
func (d DeciDegree) Degrees() string {
	return formatScaled(int64(d), 10, 1)
}

// formatScaled renders value/div with up to maxDecimals decimal places,
// dropping trailing zeros, using only integer arithmetic.
func formatScaled(value, div int64, maxDecimals int) string {
	neg := value < 0
	if neg {
		value = -value
	}
	whole := value / div
	frac := value % div
	if frac == 0 {
		if neg {
			return fmt.Sprintf("-%d", whole)
		}
		return fmt.Sprintf("%d", whole)
	}
	// Scale the fraction to maxDecimals digits.
	scale := int64(1)
	for i := 0; i < maxDecimals; i++ {
		scale *= 10
	}
	digits := frac * scale / div
	s := fmt.Sprintf("%0*d", maxDecimals, digits)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if neg {
		return fmt.Sprintf("-%d.%s", whole, s)
	}
	return fmt.Sprintf("%d.%s", whole, s)
}
