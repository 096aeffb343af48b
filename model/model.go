// Package model defines the data types shared across the extraction
// pipeline: OCR tokens, detected regions, table candidate grids, and
// finalized tables with quality metrics.
//
// All types are plain values scoped to a single conversion. Nothing in
// this package is shared between conversions.
package model

// SourceMethod identifies which extraction method produced a Grid.
type SourceMethod string

const (
	// SourceNative marks grids parsed directly from a document format
	// (DOCX, XLSX, HTML) without OCR.
	SourceNative SourceMethod = "native"

	// SourceOCR marks grids reconstructed from positioned OCR tokens.
	SourceOCR SourceMethod = "ocr"

	// SourcePDFText marks grids produced by the PDF text-layout backend.
	SourcePDFText SourceMethod = "pdf-text"

	// SourcePDFLattice marks grids produced by the PDF raster backend.
	SourcePDFLattice SourceMethod = "pdf-lattice"
)

// Token is a single OCR-recognized word with its position in the source
// raster and the engine's recognition confidence (0-100).
type Token struct {
	Text       string
	Left       int
	Top        int
	Width      int
	Height     int
	Confidence float64
}

// Region is an axis-aligned area of an image hypothesized to contain a
// table. Coordinates are in the pixel space of the source raster. Area is
// the detector's contour measurement, used only for ranking; it is not
// recomputed from Width*Height.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
	Area   int
}

// Contains reports whether the token's center point falls inside the region.
func (r Region) Contains(t Token) bool {
	cx := t.Left + t.Width/2
	cy := t.Top + t.Height/2
	return cx >= r.X && cx < r.X+r.Width && cy >= r.Y && cy < r.Y+r.Height
}

// Grid is a rectangular array of text cells representing one table
// candidate. Rows preserve top-to-bottom, left-to-right reading order
// established at construction.
type Grid struct {
	Rows   [][]string
	Source SourceMethod

	// Region is the detected source region, when the grid came from a
	// raster. Nil for native grids.
	Region *Region

	// Page is the 1-based page number for paginated sources, 0 otherwise.
	Page int

	// Confidence is the grid-level extraction confidence in [0,1]. For OCR
	// grids this is the mean token confidence; the whole-image fallback
	// path pins it to a fixed lower value.
	Confidence float64

	// SelfReportedAccuracy is the backend's own accuracy estimate in [0,1],
	// or 0 when the backend reports none. Used by the reconciler to break
	// duplicate ties.
	SelfReportedAccuracy float64
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	return len(g.Rows)
}

// ColCount returns the number of columns in the first row.
func (g *Grid) ColCount() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// IsRectangular reports whether every row has the same length.
func (g *Grid) IsRectangular() bool {
	if len(g.Rows) == 0 {
		return true
	}
	want := len(g.Rows[0])
	for _, row := range g.Rows[1:] {
		if len(row) != want {
			return false
		}
	}
	return true
}

// Rectangularize right-pads every row with empty cells up to the longest
// row observed, freezing the grid into rectangular shape.
func (g *Grid) Rectangularize() {
	maxCols := 0
	for _, row := range g.Rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	for i, row := range g.Rows {
		for len(row) < maxCols {
			row = append(row, "")
		}
		g.Rows[i] = row
	}
}

// IsEmpty reports whether the grid holds no non-blank cell.
func (g *Grid) IsEmpty() bool {
	for _, row := range g.Rows {
		for _, cell := range row {
			if cell != "" {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() Grid {
	out := *g
	out.Rows = make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	if g.Region != nil {
		region := *g.Region
		out.Region = &region
	}
	return out
}

// QualityMetrics captures derived extraction-quality measurements. Values
// are clamped to [0,1] and rounded to 3 decimals; Issues holds at most a
// handful of illustrative problem descriptions.
type QualityMetrics struct {
	AccuracyScore float64
	Completeness  float64
	Consistency   float64
	Issues        []string
}

// Table is the finalized, externally visible artifact: a frozen grid with
// header information, an overall confidence, and quality metrics. Tables
// are never mutated after scoring.
type Table struct {
	Grid       Grid
	HasHeaders bool
	Confidence float64
	Quality    QualityMetrics
}

/// Headers returns the table's header row. Every finalized table has one:
// either detected from the data or synthesized as Column_1..Column_k.
func (t *Table) Headers() []string {
	if len(t.Grid.Rows) == 0 {
		return nil
	}
	return t.Grid.Rows[0]
}
