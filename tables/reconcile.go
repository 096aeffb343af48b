package tables

import (
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// Reconciler deduplicates table candidates produced for the same document
// by independent backends or regions.
type Reconciler struct {
	config Config
}

// NewReconciler creates a reconciler with default configuration.
func NewReconciler() *Reconciler {
	return &Reconciler{config: DefaultConfig()}
}

// Configure sets reconciler parameters.
func (r *Reconciler) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	r.config = config
	return nil
}

// Reconcile processes grids in input order, comparing each candidate
// against every grid already accepted. Two grids are comparison-eligible
// only when their row and column counts match exactly; for eligible pairs
// the top-left 3x3 corner block decides similarity. A duplicate keeps
// whichever grid self-reports the higher accuracy, first one winning ties.
//
// This is a greedy, order-dependent O(n^2) prefix comparison. Backends are
// expected to agree closely on true duplicates and diverge sharply on
// distinct tables, so a corner sample is enough.
func (r *Reconciler) Reconcile(grids []model.Grid) []model.Grid {
	if len(grids) == 0 {
		return nil
	}

	accepted := make([]model.Grid, 0, len(grids))
	for _, candidate := range grids {
		duplicateOf := -1
		for i := range accepted {
			if !comparable(&candidate, &accepted[i]) {
				continue
			}
			if similarity(candidate.Rows, accepted[i].Rows) > r.config.SimilarityThreshold {
				duplicateOf = i
				break
			}
		}
		if duplicateOf < 0 {
			accepted = append(accepted, candidate)
			continue
		}
		if candidate.SelfReportedAccuracy > accepted[duplicateOf].SelfReportedAccuracy {
			accepted[duplicateOf] = candidate
		}
	}
	return accepted
}

// comparable reports whether two grids are eligible for similarity
// comparison. Grids with zero rows or columns are never eligible and are
// always retained as distinct.
func comparable(a, b *model.Grid) bool {
	if a.RowCount() == 0 || a.ColCount() == 0 {
		return false
	}
	if b.RowCount() == 0 || b.ColCount() == 0 {
		return false
	}
	return a.RowCount() == b.RowCount() && a.ColCount() == b.ColCount()
}

// similarity returns the fraction of positionally matching cells in the
// top-left min(3,rows) x min(3,cols) block, comparing trimmed, lowercased
// text.
func similarity(a, b [][]string) float64 {
	rows := min3(len(a), len(b))
	cols := 0
	if len(a) > 0 && len(b) > 0 {
		cols = min3(len(a[0]), len(b[0]))
	}
	if rows == 0 || cols == 0 {
		return 0
	}

	matching := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j >= len(a[i]) || j >= len(b[i]) {
				continue
			}
			c1 := strings.ToLower(strings.TrimSpace(a[i][j]))
			c2 := strings.ToLower(strings.TrimSpace(b[i][j]))
			if c1 == c2 {
				matching++
			}
		}
	}
	return float64(matching) / float64(rows*cols)
}

func min3(vals ...int) int {
	m := 3
	for _, v := range vals {
		if v < m {
			m = v
		}
	}
	return m
}
