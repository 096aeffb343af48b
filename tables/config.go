package tables

import "fmt"

// Config holds the tunable thresholds used across detection, clustering,
// and reconciliation.
type Config struct {
	// MinRegionArea is the minimum contour area (px^2) for a detected
	// region to count as a table candidate.
	MinRegionArea int `yaml:"min_region_area"`

	// RegionPadding is the margin (px) added around a detected region to
	// recover text sitting just outside the ruling lines.
	RegionPadding int `yaml:"region_padding"`

	// HorizontalKernel and VerticalKernel are the structuring element
	// lengths (px) used to isolate ruling lines by directional opening.
	HorizontalKernel int `yaml:"horizontal_kernel"`
	VerticalKernel   int `yaml:"vertical_kernel"`

	// RowTolerance is the vertical distance (px) a token may sit from the
	// running mean of the current row and still join it.
	RowTolerance int `yaml:"row_tolerance"`

	// ConfidenceFloor discards OCR tokens below this recognition
	// confidence (0-100).
	ConfidenceFloor float64 `yaml:"confidence_floor"`

	// SimilarityThreshold is the corner-block match fraction above which
	// two structurally equal grids are considered duplicates.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// FallbackConfidence is assigned to grids built from whole-image
	// clustering when no structural region corroborates them.
	FallbackConfidence float64 `yaml:"fallback_confidence"`
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		MinRegionArea:       1000,
		RegionPadding:       10,
		HorizontalKernel:    40,
		VerticalKernel:      40,
		RowTolerance:        20,
		ConfidenceFloor:     30,
		SimilarityThreshold: 0.8,
		FallbackConfidence:  0.5,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MinRegionArea < 0 {
		return fmt.Errorf("min region area %d must be >= 0", c.MinRegionArea)
	}
	if c.RegionPadding < 0 {
		return fmt.Errorf("region padding %d must be >= 0", c.RegionPadding)
	}
	if c.HorizontalKernel < 2 || c.VerticalKernel < 2 {
		return fmt.Errorf("kernel lengths %dx%d must be >= 2", c.HorizontalKernel, c.VerticalKernel)
	}
	if c.RowTolerance <= 0 {
		return fmt.Errorf("row tolerance %d must be > 0", c.RowTolerance)
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 100 {
		return fmt.Errorf("confidence floor %.1f must be in [0,100]", c.ConfidenceFloor)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %.2f must be in [0,1]", c.SimilarityThreshold)
	}
	if c.FallbackConfidence < 0 || c.FallbackConfidence > 1 {
		return fmt.Errorf("fallback confidence %.2f must be in [0,1]", c.FallbackConfidence)
	}
	return nil
}
