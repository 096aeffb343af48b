package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// Reader provides access to the sheets of one XLSX workbook.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	workbook  *workbookXML
	rels      *relationshipsXML
	shared    []string
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads an XLSX workbook from an in-memory byte slice.
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}

	if err := r.parseWorkbook(); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	r.parseSharedStrings()

	return r, nil
}

// Close releases resources associated with the Reader. Close is a no-op
// for in-memory readers.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// SheetNames returns workbook sheet names in declaration order.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.workbook.Sheets.Sheet))
	for i, s := range r.workbook.Sheets.Sheet {
		names[i] = s.Name
	}
	return names
}

// Grids returns one grid per sheet that contains data, in workbook order.
// Sparse cells are placed by their reference, missing cells read as empty,
// and rows without any non-blank cell are skipped.
func (r *Reader) Grids() ([]model.Grid, error) {
	var grids []model.Grid
	for _, ref := range r.workbook.Sheets.Sheet {
		ws, err := r.parseWorksheet(ref)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", ref.Name, err)
		}

		grid := r.sheetGrid(ws)
		if grid.IsEmpty() {
			continue
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

// sheetGrid converts a parsed worksheet into a rectangular grid.
func (r *Reader) sheetGrid(ws *worksheetXML) model.Grid {
	grid := model.Grid{Source: model.SourceNative}

	for _, row := range ws.SheetData.Rows {
		cells := r.rowCells(row)
		if cells == nil {
			continue
		}
		grid.Rows = append(grid.Rows, cells)
	}
	grid.Rectangularize()
	return grid
}

// rowCells resolves one sparse sheet row into a dense string slice, or nil
// when the row has no non-blank cell.
func (r *Reader) rowCells(row rowXML) []string {
	maxCol := -1
	values := make(map[int]string, len(row.Cells))
	for _, c := range row.Cells {
		col, _, err := ParseCellRef(c.R)
		if err != nil {
			// Cells without a reference take the next free column.
			col = maxCol + 1
		}
		if col > maxCol {
			maxCol = col
		}
		values[col] = r.cellValue(c)
	}
	if maxCol < 0 {
		return nil
	}

	cells := make([]string, maxCol+1)
	blank := true
	for col, v := range values {
		cells[col] = v
		if strings.TrimSpace(v) != "" {
			blank = false
		}
	}
	if blank {
		return nil
	}
	return cells
}

// cellValue resolves a cell's display text from its type.
func (r *Reader) cellValue(c cellXML) string {
	switch c.T {
	case "s":
		idx := 0
		for _, ch := range c.V {
			if ch < '0' || ch > '9' {
				return c.V
			}
			idx = idx*10 + int(ch-'0')
		}
		if idx < len(r.shared) {
			return r.shared[idx]
		}
		return ""
	case "inlineStr":
		if c.Is != nil {
			return inlineText(c.Is)
		}
		return ""
	case "b":
		if c.V == "1" {
			return "TRUE"
		}
		return "FALSE"
	default:
		if c.Is != nil {
			return inlineText(c.Is)
		}
		return c.V
	}
}

func inlineText(is *inlineStrXML) string {
	if is.T != "" {
		return is.T
	}
	var sb strings.Builder
	for _, run := range is.R {
		sb.WriteString(run.T)
	}
	return sb.String()
}

// parseWorkbook parses xl/workbook.xml.
func (r *Reader) parseWorkbook() error {
	data, err := r.getFileContent("xl/workbook.xml")
	if err != nil {
		return err
	}
	r.workbook = &workbookXML{}
	return xml.Unmarshal(data, r.workbook)
}

// parseRelationships parses the workbook relationships, which map sheet
// r:ids to worksheet part paths.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("xl/_rels/workbook.xml.rels")
	if err != nil {
		// Optional; fall back to conventional sheet paths.
		return nil
	}
	r.rels = &relationshipsXML{}
	return xml.Unmarshal(data, r.rels)
}

// parseSharedStrings parses xl/sharedStrings.xml when present.
func (r *Reader) parseSharedStrings() {
	data, err := r.getFileContent("xl/sharedStrings.xml")
	if err != nil {
		return
	}

	sst := &sharedStringsXML{}
	if err := xml.Unmarshal(data, sst); err != nil {
		return
	}

	r.shared = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			r.shared[i] = si.T
			continue
		}
		var sb strings.Builder
		for _, run := range si.R {
			sb.WriteString(run.T)
		}
		r.shared[i] = sb.String()
	}
}

// parseWorksheet loads the worksheet part referenced by one workbook entry.
func (r *Reader) parseWorksheet(ref sheetRefXML) (*worksheetXML, error) {
	target := r.sheetTarget(ref)

	data, err := r.getFileContent(target)
	if err != nil {
		return nil, err
	}

	ws := &worksheetXML{}
	if err := xml.Unmarshal(data, ws); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", target, err)
	}
	return ws, nil
}

// sheetTarget resolves the zip path of a sheet, via the relationship table
// when available, otherwise by the conventional sheet<id>.xml name.
func (r *Reader) sheetTarget(ref sheetRefXML) string {
	if r.rels != nil {
		for _, rel := range r.rels.Relationship {
			if rel.ID == ref.RID {
				if path.IsAbs(rel.Target) {
					return strings.TrimPrefix(rel.Target, "/")
				}
				return path.Join("xl", rel.Target)
			}
		}
	}
	return "xl/worksheets/sheet" + ref.SheetID + ".xml"
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}
