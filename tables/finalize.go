package tables

import (
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// Finalizer turns a raw grid into a finished table: header inference,
// cell normalization, and quality scoring, in that order.
type Finalizer struct {
	config Config
}

// NewFinalizer creates a finalizer with default configuration.
func NewFinalizer() *Finalizer {
	return &Finalizer{config: DefaultConfig()}
}

// Configure sets finalizer parameters.
func (f *Finalizer) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	f.config = config
	return nil
}

// Finalize produces the terminal Table artifact for one grid. The input is
// not mutated. Blank rows are dropped and the grid is rectangularized
// before header inference, so non-rectangular input is repaired rather
// than rejected. Every emitted table has a header row: detected headers
// are sanitized into unique names, otherwise Column_1..Column_k is
// prepended.
func (f *Finalizer) Finalize(grid model.Grid) model.Table {
	g := grid.Clone()
	g.Rows = dropBlankRows(g.Rows)
	g.Rectangularize()

	hasHeaders := HasHeaders(g.Rows)
	if hasHeaders {
		g.Rows[0] = SanitizeHeaders(g.Rows[0])
	} else if g.ColCount() > 0 {
		g.Rows = append([][]string{SyntheticHeaders(g.ColCount())}, g.Rows...)
	}

	for i := 1; i < len(g.Rows); i++ {
		for j := range g.Rows[i] {
			g.Rows[i][j] = NormalizeCell(g.Rows[i][j])
		}
	}
	g.Rectangularize()

	quality := ScoreGrid(&g)

	confidence := g.Confidence
	if confidence == 0 {
		confidence = g.SelfReportedAccuracy
	}
	if confidence == 0 {
		confidence = quality.AccuracyScore
	}

	return model.Table{
		Grid:       g,
		HasHeaders: hasHeaders,
		Confidence: clamp01(confidence),
		Quality:    quality,
	}
}

// dropBlankRows removes rows without any non-blank cell.
func dropBlankRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, row)
		}
	}
	return kept
}
