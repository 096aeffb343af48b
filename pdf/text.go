package pdf

import (
	"regexp"
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// columnSplitter separates cells in a text-layer line: a run of two or
// more spaces, a tab, or a pipe.
var columnSplitter = regexp.MustCompile(`\s{2,}|\t|\|`)

// textAccuracy is the self-reported accuracy of text-layer extraction.
// Embedded text carries no recognition noise, but column inference from
// whitespace is approximate.
const textAccuracy = 0.85

// TextBackend extracts tables from the embedded text layer by splitting
// lines on column separators. Useful for PDFs produced from digital
// sources; scanned documents have no text layer and yield nothing.
type TextBackend struct{}

// Name implements Backend.
func (TextBackend) Name() string { return "pdf-text" }

// Extract implements Backend.
func (TextBackend) Extract(doc *Document) ([]model.Grid, error) {
	var grids []model.Grid
	for page := 0; page < doc.PageCount(); page++ {
		text, err := doc.PageText(page)
		if err != nil {
			return grids, err
		}
		for _, rows := range tableBlocks(text) {
			grids = append(grids, textGrid(rows, page+1))
		}
	}
	return grids, nil
}

// tableBlocks splits page text into blocks of consecutive multi-column
// lines. A line that does not split into at least two cells ends the
// current block; blocks need at least two rows to count as a table.
func tableBlocks(text string) [][][]string {
	var blocks [][][]string
	var current [][]string

	flush := func() {
		if len(current) >= 2 {
			blocks = append(blocks, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitColumns(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		current = append(current, cells)
	}
	flush()

	return blocks
}

// splitColumns breaks one line into trimmed cells, dropping empty edge
// fragments produced by leading separators.
func splitColumns(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	parts := columnSplitter.Split(line, -1)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		cells = append(cells, p)
	}
	return cells
}

func textGrid(rows [][]string, page int) model.Grid {
	grid := model.Grid{
		Rows:                 rows,
		Source:               model.SourcePDFText,
		Page:                 page,
		SelfReportedAccuracy: textAccuracy,
	}
	grid.Rectangularize()
	return grid
}
