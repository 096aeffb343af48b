package export

import (
	"strings"
	"testing"

	"github.com/romanch203/DataConverterPro/model"
)

func table(rows [][]string) model.Table {
	return model.Table{Grid: model.Grid{Rows: rows}}
}

func TestCSVString_SingleTable(t *testing.T) {
	out, err := CSVString([]model.Table{table([][]string{
		{"Name", "Age"},
		{"Alice", "30"},
	})})
	if err != nil {
		t.Fatalf("CSVString: %v", err)
	}
	want := "Name,Age\nAlice,30\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCSVString_MultiTableBanners(t *testing.T) {
	out, err := CSVString([]model.Table{
		table([][]string{{"a", "b"}, {"1", "2"}}),
		table([][]string{{"x"}, {"9"}}),
	})
	if err != nil {
		t.Fatalf("CSVString: %v", err)
	}

	want := "=== TABLE 1 ===\na,b\n1,2\n\n=== TABLE 2 ===\nx\n9\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestCSVString_QuotingDelegatedToWriter(t *testing.T) {
	out, err := CSVString([]model.Table{table([][]string{
		{"note", "value"},
		{"has, comma", "plain"},
	})})
	if err != nil {
		t.Fatalf("CSVString: %v", err)
	}
	if !strings.Contains(out, `"has, comma"`) {
		t.Errorf("comma cell not quoted: %q", out)
	}
}

func TestCSVString_Empty(t *testing.T) {
	out, err := CSVString(nil)
	if err != nil {
		t.Fatalf("CSVString: %v", err)
	}
	if out != "" {
		t.Errorf("output = %q, want empty", out)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Table{
		table([][]string{{"h1", "h2", "h3"}, {"a", "b", "c"}, {"d", "e", "f"}}),
		table([][]string{{"x", "y"}, {"1", "2"}}),
	})
	if s.TableCount != 2 {
		t.Errorf("tables = %d, want 2", s.TableCount)
	}
	if s.RowCount != 3 {
		t.Errorf("rows = %d, want 3 (headers excluded)", s.RowCount)
	}
	if s.ColumnCount != 3 {
		t.Errorf("columns = %d, want 3", s.ColumnCount)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TableCount != 0 || s.RowCount != 0 || s.ColumnCount != 0 {
		t.Errorf("summary = %+v, want zeros", s)
	}
}
