package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxCanvasSide bounds a rendered frame so a typo in --width cannot allocate
// gigabytes of raster memory.
const maxCanvasSide = 16384

// ValidateDimensions checks that a canvas size is finite, positive and within
// the supported raster bounds.
func ValidateDimensions(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return New(ErrCodeInvalidDimensions, "%s must be a finite number", d.name)
		}
		if d.v <= 0 {
			return New(ErrCodeInvalidDimensions, "%s must be positive, got %g", d.name, d.v)
		}
		if d.v > maxCanvasSide {
			return New(ErrCodeInvalidDimensions, "%s too large (max %d), got %g", d.name, maxCanvasSide, d.v)
		}
	}
	return nil
}

// ValidateColumnName checks a CSV header cell. Headers are matched
// case-insensitively, so only emptiness and control characters are rejected.
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidDataset, "column name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "column name %q contains control characters", name)
		}
	}
	return nil
}
