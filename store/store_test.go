package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := Record{
		ID:               "c-1",
		OriginalFilename: "report.pdf",
		OutputPath:       "/tmp/out/c-1.csv",
		TableCount:       2,
		RowCount:         14,
		ColumnCount:      5,
		Accuracy:         0.91,
	}
	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.OriginalFilename != "report.pdf" || got.TableCount != 2 || got.Accuracy != 0.91 {
		t.Errorf("record = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := Record{ID: "dup", OriginalFilename: "a", OutputPath: "p"}
	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := s.Insert(ctx, rec); err == nil {
		t.Error("expected error on duplicate id")
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		rec := Record{
			ID:               id,
			OriginalFilename: id + ".html",
			OutputPath:       "p",
			CreatedAt:        base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}

	recs, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	if recs[0].ID != "new" || recs[2].ID != "old" {
		t.Errorf("order = %s,%s,%s, want new,mid,old", recs[0].ID, recs[1].ID, recs[2].ID)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d records, want 2", len(limited))
	}
}

func TestDeleteOlderThan(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		rec := Record{
			ID:         string(rune('a' + i)),
			OutputPath: "p",
			CreatedAt:  base.Add(time.Duration(i) * 24 * time.Hour),
		}
		if err := s.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	n, err := s.DeleteOlderThan(ctx, base.Add(2*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}

	recs, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d remaining, want 2", len(recs))
	}
}
