package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConvertBatch_OrderPreserved(t *testing.T) {
	p := newTestPipeline(t, nil)

	var items []BatchItem
	for i := 0; i < 8; i++ {
		items = append(items, BatchItem{
			Filename: fmt.Sprintf("file%d.html", i),
			Data:     []byte(htmlTable),
		})
	}

	results := p.ConvertBatch(context.Background(), items, 4)
	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	for i, res := range results {
		if res.Index != i {
			t.Errorf("result %d has index %d", i, res.Index)
		}
		if res.Filename != items[i].Filename {
			t.Errorf("result %d filename = %q, want %q", i, res.Filename, items[i].Filename)
		}
		if res.Err != nil {
			t.Errorf("result %d failed: %v", i, res.Err)
		}
		if res.Conv == nil || len(res.Conv.Tables) != 1 {
			t.Errorf("result %d has no table", i)
		}
	}
}

func TestConvertBatch_MixedOutcomes(t *testing.T) {
	p := newTestPipeline(t, nil)

	items := []BatchItem{
		{Filename: "good.html", Data: []byte(htmlTable)},
		{Filename: "bad.xyz", Data: []byte("?")},
		{Filename: "empty.html", Data: []byte("<p>nope</p>")},
	}

	results := p.ConvertBatch(context.Background(), items, 2)

	if results[0].Err != nil {
		t.Errorf("good file failed: %v", results[0].Err)
	}
	if KindOf(results[1].Err) != FailureMalformedInput {
		t.Errorf("bad extension kind = %q", KindOf(results[1].Err))
	}
	if KindOf(results[2].Err) != FailureNoData {
		t.Errorf("empty file kind = %q", KindOf(results[2].Err))
	}
}

func TestConvertBatch_CanceledContext(t *testing.T) {
	p := newTestPipeline(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []BatchItem{
		{Filename: "a.html", Data: []byte(htmlTable)},
		{Filename: "b.html", Data: []byte(htmlTable)},
	}
	results := p.ConvertBatch(ctx, items, 1)

	// Items may race the cancellation onto a free worker; each result is
	// either a completed conversion or a context error, never dropped.
	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	for i, res := range results {
		if res.Err != nil && !errors.Is(res.Err, context.Canceled) {
			t.Errorf("result %d: unexpected error %v", i, res.Err)
		}
		if res.Err == nil && res.Conv == nil {
			t.Errorf("result %d dropped", i)
		}
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	p := newTestPipeline(t, nil)
	if results := p.ConvertBatch(context.Background(), nil, 4); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestConvertBatch_WorkerFloor(t *testing.T) {
	p := newTestPipeline(t, nil)
	items := []BatchItem{{Filename: "a.html", Data: []byte(htmlTable)}}
	results := p.ConvertBatch(context.Background(), items, 0)
	if len(results) != 1 || results[0].Err != nil {
		t.Errorf("unexpected results: %+v", results)
	}
}
