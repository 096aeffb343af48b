package tables

import (
	"fmt"
	"math"
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// maxIssues bounds the number of illustrative issue strings retained per
// scoring invocation.
const maxIssues = 5

// ScoreGrid computes quality metrics for a single finalized grid.
func ScoreGrid(g *model.Grid) model.QualityMetrics {
	return ScoreGrids([]model.Grid{*g})
}

// ScoreGrids computes document-level quality metrics across a set of
// extracted grids. Completeness is the fraction of non-empty cells;
// consistency penalizes rows whose length deviates from their grid's
// first row. The accuracy score blends OCR confidence with completeness
// when any grid came through OCR (confidence is the stronger external
// signal there); for natively parsed grids structure is the only signal,
// so completeness and consistency carry the weight.
//
// Every metric is clamped to [0,1] and rounded to 3 decimals. Metrics are
// recomputed fresh per call and never merged across documents.
func ScoreGrids(grids []model.Grid) model.QualityMetrics {
	if len(grids) == 0 {
		return model.QualityMetrics{
			Issues: []string{"no tables extracted"},
		}
	}

	totalCells := 0
	emptyCells := 0
	inconsistentRows := 0
	var issues []string

	fromOCR := false
	confSum := 0.0
	confCount := 0

	for ti, g := range grids {
		if g.Source == model.SourceOCR {
			fromOCR = true
			confSum += g.Confidence
			confCount++
		}

		if len(g.Rows) == 0 {
			continue
		}
		expected := len(g.Rows[0])
		for ri, row := range g.Rows {
			totalCells += len(row)
			for _, cell := range row {
				if strings.TrimSpace(cell) == "" {
					emptyCells++
				}
			}
			if ri > 0 && len(row) != expected {
				inconsistentRows++
				if len(issues) < maxIssues {
					issues = append(issues, fmt.Sprintf("table %d row %d: inconsistent column count", ti, ri))
				}
			}
		}
	}

	completeness := 0.0
	if totalCells > 0 {
		completeness = float64(totalCells-emptyCells) / float64(totalCells)
	}
	consistency := 1.0 - float64(inconsistentRows)/float64(len(grids))

	var accuracy float64
	if fromOCR {
		avgConf := 0.0
		if confCount > 0 {
			avgConf = confSum / float64(confCount)
		}
		accuracy = 0.7*avgConf + 0.3*completeness
	} else {
		accuracy = 0.6*completeness + 0.4*consistency
	}

	return model.QualityMetrics{
		AccuracyScore: round3(clamp01(accuracy)),
		Completeness:  round3(clamp01(completeness)),
		Consistency:   round3(clamp01(consistency)),
		Issues:        issues,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
