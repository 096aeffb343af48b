// Package docx extracts tables from DOCX (Office Open XML) documents.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// Reader provides access to the tables of one DOCX document.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	document  *documentXML
}

// Open opens a DOCX file for reading.
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

// NewReader reads a DOCX document from an in-memory byte slice.
func NewReader(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zipReader: zr}
	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
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

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
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

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	return nil
}

// Tables returns every table in the document as a grid of cell text.
// Horizontally merged cells (gridSpan) are expanded by repeating the cell
// text, so each row carries its full column count. Rows without any
// non-blank cell are skipped; tables left with no rows are dropped.
func (r *Reader) Tables() []model.Grid {
	if r.document == nil || r.document.Body == nil {
		return nil
	}

	var grids []model.Grid
	for _, tbl := range r.document.Body.Tables {
		grid := model.Grid{Source: model.SourceNative}
		for _, row := range tbl.Rows {
			cells := expandRow(row)
			if rowBlank(cells) {
				continue
			}
			grid.Rows = append(grid.Rows, cells)
		}
		if len(grid.Rows) == 0 {
			continue
		}
		grid.Rectangularize()
		grids = append(grids, grid)
	}
	return grids
}

// expandRow flattens one table row, repeating merged cell text across its
// grid span.
func expandRow(row tableRowXML) []string {
	var cells []string
	for _, cell := range row.Cells {
		text := cellText(cell)
		span := 1
		if n, err := strconv.Atoi(cell.Properties.GridSpan.Val); err == nil && n > 1 {
			span = n
		}
		for i := 0; i < span; i++ {
			cells = append(cells, text)
		}
	}
	return cells
}

// cellText joins the cell's paragraphs with newlines, runs within a
// paragraph concatenate directly.
func cellText(cell tableCellXML) string {
	var paras []string
	for _, p := range cell.Paragraphs {
		var sb strings.Builder
		for _, run := range p.Runs {
			for _, t := range run.Text {
				sb.WriteString(t.Value)
			}
		}
		if s := sb.String(); s != "" {
			paras = append(paras, s)
		}
	}
	return strings.Join(paras, "\n")
}

func rowBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
