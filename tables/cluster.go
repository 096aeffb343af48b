package tables

import (
	"sort"
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// TokenClusterer groups positioned OCR tokens into an ordered grid of
// cells. Clustering is one-dimensional interval grouping on the vertical
// axis, deliberately trading precision for robustness on slightly skewed
// scans: a token joins the open row while its top edge stays within
// RowTolerance of the row's running mean top.
type TokenClusterer struct {
	config Config
}

// NewTokenClusterer creates a clusterer with default configuration.
func NewTokenClusterer() *TokenClusterer {
	return &TokenClusterer{config: DefaultConfig()}
}

// Configure sets clusterer parameters.
func (c *TokenClusterer) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	c.config = config
	return nil
}

// Cluster builds a rectangular grid from the tokens overlapping region.
// A nil region means all tokens are considered. Returns nil when no token
// passes the confidence floor.
func (c *TokenClusterer) Cluster(tokens []model.Token, region *model.Region) *model.Grid {
	rows, confidence := c.clusterRows(tokens, region)
	if len(rows) == 0 {
		return nil
	}

	grid := &model.Grid{
		Source:     model.SourceOCR,
		Confidence: confidence,
	}
	if region != nil {
		r := *region
		grid.Region = &r
	}
	for _, row := range rows {
		grid.Rows = append(grid.Rows, rowText(row))
	}
	grid.Rectangularize()
	return grid
}

// ClusterWhole builds a grid from the full token set when region detection
// found no structural table. The acceptance bar is higher: only rows with
// more than one column count as tabular, and the grid carries a fixed lower
// confidence reflecting the absence of structural corroboration.
func (c *TokenClusterer) ClusterWhole(tokens []model.Token) *model.Grid {
	rows, _ := c.clusterRows(tokens, nil)

	grid := &model.Grid{
		Source:     model.SourceOCR,
		Confidence: c.config.FallbackConfidence,
	}
	for _, row := range rows {
		cells := rowText(row)
		if len(cells) > 1 {
			grid.Rows = append(grid.Rows, cells)
		}
	}
	if len(grid.Rows) == 0 {
		return nil
	}
	grid.Rectangularize()
	return grid
}

// clusterRows filters, sorts, and groups tokens into rows. The second
// return value is the mean confidence of the surviving tokens, scaled to
// [0,1].
func (c *TokenClusterer) clusterRows(tokens []model.Token, region *model.Region) ([][]model.Token, float64) {
	kept := make([]model.Token, 0, len(tokens))
	confSum := 0.0
	for _, tok := range tokens {
		if tok.Confidence < c.config.ConfidenceFloor {
			continue
		}
		if strings.TrimSpace(tok.Text) == "" {
			continue
		}
		if region != nil && !region.Contains(tok) {
			continue
		}
		kept = append(kept, tok)
		confSum += tok.Confidence
	}
	if len(kept) == 0 {
		return nil, 0
	}

	// The walk below is order-dependent on ties, so the vertical sort must
	// be stable to keep results deterministic.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Top < kept[j].Top
	})

	var rows [][]model.Token
	current := []model.Token{kept[0]}
	topSum := kept[0].Top

	for _, tok := range kept[1:] {
		mean := float64(topSum) / float64(len(current))
		if abs(float64(tok.Top)-mean) <= float64(c.config.RowTolerance) {
			current = append(current, tok)
			topSum += tok.Top
		} else {
			rows = append(rows, closeRow(current))
			current = []model.Token{tok}
			topSum = tok.Top
		}
	}
	rows = append(rows, closeRow(current))

	return rows, confSum / float64(len(kept)) / 100.0
}

// closeRow freezes a row: left-to-right order establishes the columns.
func closeRow(row []model.Token) []model.Token {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].Left < row[j].Left
	})
	return row
}

func rowText(row []model.Token) []string {
	cells := make([]string, len(row))
	for i, tok := range row {
		cells[i] = tok.Text
	}
	return cells
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
