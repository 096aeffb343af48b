package tables

import (
	"reflect"
	"testing"

	"github.com/romanch203/DataConverterPro/model"
)

func TestReconciler_Reconcile_Empty(t *testing.T) {
	r := NewReconciler()
	if got := r.Reconcile(nil); got != nil {
		t.Errorf("Reconcile(nil) = %v, want nil", got)
	}
}

func TestReconciler_Reconcile_KeepsDistinctGrids(t *testing.T) {
	grids := []model.Grid{
		{Rows: [][]string{{"Name", "Age"}, {"Alice", "30"}}},
		{Rows: [][]string{{"Product", "Price"}, {"Widget", "9.99"}}},
	}

	r := NewReconciler()
	got := r.Reconcile(grids)
	if len(got) != 2 {
		t.Fatalf("got %d grids, want 2", len(got))
	}
}

func TestReconciler_Reconcile_DuplicateKeepsHigherAccuracy(t *testing.T) {
	low := model.Grid{
		Rows: [][]string{
			{"Name", "Age"},
			{"Alice", "30"},
			{"Bob", "25"},
		},
		SelfReportedAccuracy: 0.7,
	}
	high := low.Clone()
	high.SelfReportedAccuracy = 0.9
	// One corner cell differs: 5 of 6 compared cells match, 0.833 > 0.8.
	high.Rows[2][1] = "26"

	r := NewReconciler()
	got := r.Reconcile([]model.Grid{low, high})
	if len(got) != 1 {
		t.Fatalf("got %d grids, want 1", len(got))
	}
	if got[0].SelfReportedAccuracy != 0.9 {
		t.Errorf("kept accuracy %v, want the higher candidate (0.9)", got[0].SelfReportedAccuracy)
	}
}

func TestReconciler_Reconcile_FirstWinsTies(t *testing.T) {
	first := model.Grid{
		Rows:                 [][]string{{"a", "b"}, {"c", "d"}},
		SelfReportedAccuracy: 0.8,
		Page:                 1,
	}
	second := first.Clone()
	second.Page = 2

	r := NewReconciler()
	got := r.Reconcile([]model.Grid{first, second})
	if len(got) != 1 {
		t.Fatalf("got %d grids, want 1", len(got))
	}
	if got[0].Page != 1 {
		t.Errorf("kept grid from page %d, want the first candidate", got[0].Page)
	}
}

func TestReconciler_Reconcile_DifferentDimensionsNeverCompared(t *testing.T) {
	grids := []model.Grid{
		{Rows: [][]string{{"a", "b"}, {"c", "d"}}},
		{Rows: [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}}},
	}
	r := NewReconciler()
	if got := r.Reconcile(grids); len(got) != 2 {
		t.Errorf("got %d grids, want 2: dimension mismatch must block comparison", len(got))
	}
}

func TestReconciler_Reconcile_EmptyGridsRetained(t *testing.T) {
	grids := []model.Grid{
		{Rows: nil},
		{Rows: nil},
	}
	r := NewReconciler()
	if got := r.Reconcile(grids); len(got) != 2 {
		t.Errorf("got %d grids, want 2: empty grids are never duplicates", len(got))
	}
}

func TestReconciler_Reconcile_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := model.Grid{Rows: [][]string{{"Name", "Age"}, {"Alice", "30"}}, SelfReportedAccuracy: 0.5}
	b := model.Grid{Rows: [][]string{{" name ", "AGE"}, {"ALICE", " 30"}}, SelfReportedAccuracy: 0.6}

	r := NewReconciler()
	got := r.Reconcile([]model.Grid{a, b})
	if len(got) != 1 {
		t.Fatalf("got %d grids, want 1", len(got))
	}
}

func TestReconciler_Reconcile_ThreeBackends(t *testing.T) {
	// Three backends report the same table; one adds a corner typo and the
	// highest self-reported accuracy should survive.
	rows := [][]string{
		{"Item", "Qty", "Price"},
		{"Bolt", "10", "0.50"},
		{"Nut", "20", "0.25"},
	}
	text := model.Grid{Rows: rows, Source: model.SourcePDFText, SelfReportedAccuracy: 0.85}

	lattice := text.Clone()
	lattice.Source = model.SourcePDFLattice
	lattice.SelfReportedAccuracy = 0.92

	ocr := text.Clone()
	ocr.Source = model.SourceOCR
	ocr.SelfReportedAccuracy = 0.60
	ocr.Rows[2][2] = "O.25"

	r := NewReconciler()
	got := r.Reconcile([]model.Grid{text, lattice, ocr})
	if len(got) != 1 {
		t.Fatalf("got %d grids, want 1", len(got))
	}
	if got[0].Source != model.SourcePDFLattice {
		t.Errorf("kept source %q, want %q", got[0].Source, model.SourcePDFLattice)
	}
	if !reflect.DeepEqual(got[0].Rows, rows) {
		t.Errorf("kept rows = %v, want the clean table", got[0].Rows)
	}
}

func TestSimilarity_CornerBlock(t *testing.T) {
	a := [][]string{
		{"1", "2", "3", "x"},
		{"4", "5", "6", "x"},
		{"7", "8", "9", "x"},
		{"y", "y", "y", "y"},
	}
	b := [][]string{
		{"1", "2", "3", "q"},
		{"4", "5", "0", "q"},
		{"7", "8", "9", "q"},
		{"z", "z", "z", "z"},
	}
	// Only the 3x3 corner is compared: 8 of 9 match.
	if got := similarity(a, b); got < 0.888 || got > 0.889 {
		t.Errorf("similarity = %v, want 8/9", got)
	}
}
