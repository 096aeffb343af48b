package pdf

import (
	"image"

	"github.com/romanch203/DataConverterPro/model"
)

// latticeAccuracy is the self-reported accuracy of lattice extraction.
// Ruling-line evidence makes its structure more trustworthy than
// whitespace inference, recognition noise keeps it below certainty.
const latticeAccuracy = 0.92

// RasterExtractor turns one rendered page into table candidates. The
// pipeline's raster path implements this; injecting it keeps the PDF
// layer free of OCR wiring.
type RasterExtractor interface {
	ExtractImage(img image.Image) ([]model.Grid, error)
}

// LatticeBackend renders each page and delegates to a raster extractor
// that finds ruled table regions. It recovers tables that the text
// backend cannot see: scanned pages and vector tables whose text layer
// interleaves columns.
type LatticeBackend struct {
	Extractor RasterExtractor
}

// Name implements Backend.
func (LatticeBackend) Name() string { return "pdf-lattice" }

// Extract implements Backend.
func (b LatticeBackend) Extract(doc *Document) ([]model.Grid, error) {
	var grids []model.Grid
	for page := 0; page < doc.PageCount(); page++ {
		img, err := doc.PageImage(page)
		if err != nil {
			return grids, err
		}
		pageGrids, err := b.Extractor.ExtractImage(img)
		if err != nil {
			return grids, err
		}
		for _, g := range pageGrids {
			g.Source = model.SourcePDFLattice
			g.Page = page + 1
			if g.SelfReportedAccuracy == 0 {
				g.SelfReportedAccuracy = latticeAccuracy
			}
			grids = append(grids, g)
		}
	}
	return grids, nil
}
