package tables

import (
	"reflect"
	"testing"

	"github.com/romanch203/DataConverterPro/model"
)

func tok(text string, left, top int, conf float64) model.Token {
	return model.Token{Text: text, Left: left, Top: top, Width: 40, Height: 12, Confidence: conf}
}

func TestTokenClusterer_Cluster_RowsAndColumns(t *testing.T) {
	// Two rows, slightly jittered vertically, columns out of order.
	tokens := []model.Token{
		tok("Age", 200, 12, 95),
		tok("Name", 20, 10, 95),
		tok("30", 200, 52, 90),
		tok("Alice", 20, 48, 90),
	}

	c := NewTokenClusterer()
	grid := c.Cluster(tokens, nil)
	if grid == nil {
		t.Fatal("Cluster() returned nil")
	}

	want := [][]string{
		{"Name", "Age"},
		{"Alice", "30"},
	}
	if !reflect.DeepEqual(grid.Rows, want) {
		t.Errorf("rows = %v, want %v", grid.Rows, want)
	}
	if grid.Source != model.SourceOCR {
		t.Errorf("source = %q, want %q", grid.Source, model.SourceOCR)
	}
	if !grid.IsRectangular() {
		t.Error("clustered grid is not rectangular")
	}
}

func TestTokenClusterer_Cluster_ConfidenceFloor(t *testing.T) {
	tokens := []model.Token{
		tok("keep", 10, 10, 80),
		tok("noise", 60, 10, 12), // below the default floor of 30
	}

	c := NewTokenClusterer()
	grid := c.Cluster(tokens, nil)
	if grid == nil {
		t.Fatal("Cluster() returned nil")
	}
	if got := grid.Rows[0]; len(got) != 1 || got[0] != "keep" {
		t.Errorf("row = %v, want [keep]", got)
	}
}

func TestTokenClusterer_Cluster_AllBelowFloor(t *testing.T) {
	tokens := []model.Token{
		tok("a", 10, 10, 5),
		tok("b", 60, 10, 29),
	}
	c := NewTokenClusterer()
	if grid := c.Cluster(tokens, nil); grid != nil {
		t.Errorf("Cluster() = %v, want nil when nothing clears the floor", grid)
	}
}

func TestTokenClusterer_Cluster_BlankTokensDropped(t *testing.T) {
	tokens := []model.Token{
		tok("  ", 10, 10, 90),
		tok("x", 60, 10, 90),
	}
	c := NewTokenClusterer()
	grid := c.Cluster(tokens, nil)
	if grid == nil {
		t.Fatal("Cluster() returned nil")
	}
	if !reflect.DeepEqual(grid.Rows, [][]string{{"x"}}) {
		t.Errorf("rows = %v, want [[x]]", grid.Rows)
	}
}

func TestTokenClusterer_Cluster_RegionFilter(t *testing.T) {
	region := &model.Region{X: 0, Y: 0, Width: 100, Height: 100}
	tokens := []model.Token{
		tok("in", 10, 10, 90),
		tok("out", 500, 500, 90),
	}

	c := NewTokenClusterer()
	grid := c.Cluster(tokens, region)
	if grid == nil {
		t.Fatal("Cluster() returned nil")
	}
	if !reflect.DeepEqual(grid.Rows, [][]string{{"in"}}) {
		t.Errorf("rows = %v, want [[in]]", grid.Rows)
	}
	if grid.Region == nil || grid.Region.Width != 100 {
		t.Errorf("grid region = %+v, want copy of input region", grid.Region)
	}
}

func TestTokenClusterer_Cluster_MeanConfidence(t *testing.T) {
	tokens := []model.Token{
		tok("a", 10, 10, 80),
		tok("b", 60, 10, 90),
	}
	c := NewTokenClusterer()
	grid := c.Cluster(tokens, nil)
	if grid == nil {
		t.Fatal("Cluster() returned nil")
	}
	if grid.Confidence < 0.849 || grid.Confidence > 0.851 {
		t.Errorf("confidence = %v, want 0.85", grid.Confidence)
	}
}

func TestTokenClusterer_Cluster_RowToleranceBoundary(t *testing.T) {
	// Second token is exactly RowTolerance away from the running mean:
	// it joins the row. The third sits beyond it and starts a new row.
	tokens := []model.Token{
		tok("a", 10, 100, 90),
		tok("b", 60, 120, 90),
		tok("c", 10, 150, 90),
	}

	c := NewTokenClusterer()
	grid := c.Cluster(tokens, nil)
	if grid == nil {
		t.Fatal("Cluster() returned nil")
	}
	if grid.RowCount() != 2 {
		t.Fatalf("got %d rows, want 2: %v", grid.RowCount(), grid.Rows)
	}
	if len(grid.Rows[0]) != 2 {
		t.Errorf("first row = %v, want two cells", grid.Rows[0])
	}
}

func TestTokenClusterer_ClusterWhole(t *testing.T) {
	tokens := []model.Token{
		tok("Name", 20, 10, 95),
		tok("Age", 200, 10, 95),
		tok("Alice", 20, 50, 90),
		tok("30", 200, 50, 90),
		tok("footnote", 20, 400, 90), // single-cell row, dropped
	}

	c := NewTokenClusterer()
	grid := c.ClusterWhole(tokens)
	if grid == nil {
		t.Fatal("ClusterWhole() returned nil")
	}
	want := [][]string{
		{"Name", "Age"},
		{"Alice", "30"},
	}
	if !reflect.DeepEqual(grid.Rows, want) {
		t.Errorf("rows = %v, want %v", grid.Rows, want)
	}
	if grid.Confidence != DefaultConfig().FallbackConfidence {
		t.Errorf("confidence = %v, want fallback %v", grid.Confidence, DefaultConfig().FallbackConfidence)
	}
}

func TestTokenClusterer_ClusterWhole_NoMultiCellRows(t *testing.T) {
	tokens := []model.Token{
		tok("line one", 20, 10, 95),
		tok("line two", 20, 50, 95),
	}
	c := NewTokenClusterer()
	if grid := c.ClusterWhole(tokens); grid != nil {
		t.Errorf("ClusterWhole() = %v, want nil for prose-like input", grid)
	}
}
