// Package export serializes finalized tables for delivery.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/romanch203/DataConverterPro/model"
)

// WriteCSV writes tables to w as CSV. A single table is written bare; a
// multi-table document gets a "=== TABLE n ===" banner line before each
// table and a blank line between them, so the output stays readable and
// splittable without a container format.
func WriteCSV(w io.Writer, tables []model.Table) error {
	for i, table := range tables {
		if len(tables) > 1 {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "=== TABLE %d ===\n", i+1); err != nil {
				return err
			}
		}

		cw := csv.NewWriter(w)
		for _, row := range table.Grid.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("table %d: %w", i+1, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("table %d: %w", i+1, err)
		}
	}
	return nil
}

// CSVString renders tables via WriteCSV into a string.
func CSVString(tables []model.Table) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, tables); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Summary aggregates the size of a conversion result for reporting and
// the conversion ledger.
type Summary struct {
	TableCount  int
	RowCount    int
	ColumnCount int
}

// Summarize counts data rows (header rows excluded) and the widest column
// count across tables.
func Summarize(tables []model.Table) Summary {
	s := Summary{TableCount: len(tables)}
	for _, table := range tables {
		rows := table.Grid.RowCount()
		if rows > 0 {
			rows-- // header row
		}
		s.RowCount += rows
		if c := table.Grid.ColCount(); c > s.ColumnCount {
			s.ColumnCount = c
		}
	}
	return s
}
