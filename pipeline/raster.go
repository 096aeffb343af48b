package pipeline

import (
	"bytes"
	"image"
	"image/png"

	"github.com/romanch203/DataConverterPro/imaging"
	"github.com/romanch203/DataConverterPro/model"
)

// ExtractImage implements pdf.RasterExtractor for rendered pages. The
// raster is re-encoded as PNG for the OCR engine.
func (p *Pipeline) ExtractImage(img image.Image) ([]model.Grid, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, convErr(FailureBackend, err, "encoding page raster")
	}
	return p.rasterGrids(img, buf.Bytes())
}

// extractRaster decodes encoded image bytes and runs the raster path.
func (p *Pipeline) extractRaster(encoded []byte) ([]model.Grid, error) {
	img, err := imaging.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, convErr(FailureMalformedInput, err, "decoding image")
	}
	return p.rasterGrids(img, encoded)
}

// rasterGrids is the shared raster extraction path: binarize, detect
// ruled regions, OCR the full image once, then cluster tokens per region.
// When the mask cannot be computed or no region passes the area filter,
// the whole image is clustered as a single region at reduced confidence.
func (p *Pipeline) rasterGrids(img image.Image, encoded []byte) ([]model.Grid, error) {
	p.ocrMu.Lock()
	tokens, err := p.words.Words(encoded)
	p.ocrMu.Unlock()
	if err != nil {
		return nil, convErr(FailureBackend, err, "recognizing text")
	}

	var regions []model.Region
	mask, err := imaging.Preprocess(img)
	if err != nil {
		p.log.Warn().Err(err).Msg("mask computation failed, falling back to whole image")
	} else {
		regions = p.detector.Detect(mask)
	}

	if len(regions) == 0 {
		if grid := p.clusterer.ClusterWhole(tokens); grid != nil {
			return []model.Grid{*grid}, nil
		}
		return nil, nil
	}

	var grids []model.Grid
	for i := range regions {
		if grid := p.clusterer.Cluster(tokens, &regions[i]); grid != nil {
			grids = append(grids, *grid)
		}
	}
	return grids, nil
}
