package tables

import (
	"sort"

	"github.com/romanch203/DataConverterPro/imaging"
	"github.com/romanch203/DataConverterPro/model"
)

// RegionDetector finds candidate table regions in a binary page mask from
// the geometry of its ruling lines.
type RegionDetector struct {
	config Config
}

// NewRegionDetector creates a detector with default configuration.
func NewRegionDetector() *RegionDetector {
	return &RegionDetector{config: DefaultConfig()}
}

// Configure sets detector parameters.
func (d *RegionDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect returns candidate table regions sorted by contour area descending,
// largest (most likely) tables first. An empty result means no structural
// table was found; it is not an error. Regions may overlap: merging
// overlapping candidates is the reconciler's job once each region has been
// turned into a grid.
func (d *RegionDetector) Detect(mask *imaging.Mask) []model.Region {
	if mask == nil || mask.W == 0 || mask.H == 0 {
		return nil
	}

	// Directional opening isolates straight ruling lines; text strokes are
	// too short to survive the long thin elements.
	horizontal := imaging.Open(mask, d.config.HorizontalKernel, 1)
	vertical := imaging.Open(mask, 1, d.config.VerticalKernel)
	lines := imaging.Combine(horizontal, vertical)

	contours := imaging.ExternalContours(lines, d.config.MinRegionArea)
	if len(contours) == 0 {
		return nil
	}

	pad := d.config.RegionPadding
	regions := make([]model.Region, 0, len(contours))
	for _, c := range contours {
		x0 := c.Rect.Min.X - pad
		y0 := c.Rect.Min.Y - pad
		x1 := c.Rect.Max.X + pad
		y1 := c.Rect.Max.Y + pad
		if x0 < 0 {
			x0 = 0
		}
		if y0 < 0 {
			y0 = 0
		}
		if x1 > mask.W {
			x1 = mask.W
		}
		if y1 > mask.H {
			y1 = mask.H
		}
		regions = append(regions, model.Region{
			X:      x0,
			Y:      y0,
			Width:  x1 - x0,
			Height: y1 - y0,
			Area:   c.Area,
		})
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	return regions
}
