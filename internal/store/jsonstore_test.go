package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hyunjk/dday-todo/internal/model"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), slog.Default())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return s
}

func sampleTodo(id string) model.Todo {
	return model.Todo{
		ID:               id,
		Title:            "launch day",
		Description:      "ship it",
		TargetDate:       "2024-06-01",
		NotificationTime: "09:00",
		NotifyOffsets:    []int{7, 1, 0},
		CreatedAt:        time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestListAllEmpty(t *testing.T) {
	s := newTestStore(t)
	if got := s.ListAll(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(got))
	}
}

func TestAddRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleTodo("a")
	saved, err := s.Add(ctx, want)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if saved.ID != "a" {
		t.Fatalf("expected saved item back, got %+v", saved)
	}

	got := s.ListAll(ctx)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].ID != want.ID || got[0].Title != want.Title ||
		got[0].TargetDate != want.TargetDate ||
		got[0].NotificationTime != want.NotificationTime {
		t.Fatalf("round trip mismatch: got %+v", got[0])
	}
	if len(got[0].NotifyOffsets) != 3 || got[0].NotifyOffsets[0] != 7 {
		t.Fatalf("offsets did not survive: %v", got[0].NotifyOffsets)
	}
	if !got[0].CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("createdAt mismatch: got %v want %v", got[0].CreatedAt, want.CreatedAt)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		if _, err := s.Add(ctx, sampleTodo(id)); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	got := s.ListAll(ctx)
	if len(got) != 3 || got[0].ID != "first" || got[1].ID != "second" || got[2].ID != "third" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := s.Add(ctx, sampleTodo(id)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	replacement := sampleTodo("b")
	replacement.Title = "renamed"
	replacement.Completed = true
	if _, err := s.Update(ctx, "b", replacement); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := s.ListAll(ctx)
	if got[1].ID != "b" || got[1].Title != "renamed" || !got[1].Completed {
		t.Fatalf("expected replacement at position 1, got %+v", got[1])
	}
}

func TestUpdateMissingID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, sampleTodo("a")); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := s.Update(ctx, "nope", sampleTodo("nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got := s.ListAll(ctx)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("collection changed on failed update: %+v", got)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, sampleTodo("a")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("second delete should succeed: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("deleting unknown id should succeed: %v", err)
	}

	if got := s.ListAll(ctx); len(got) != 0 {
		t.Fatalf("expected empty collection, got %+v", got)
	}
}

func TestDuplicateIDsFirstMatchWins(t *testing.T) {
	// The store itself does not enforce uniqueness; the command surface
	// does. When duplicates exist anyway, lookups hit the first match.
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleTodo("dup")
	first.Title = "first"
	second := sampleTodo("dup")
	second.Title = "second"
	if _, err := s.Add(ctx, first); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add(ctx, second); err != nil {
		t.Fatalf("add duplicate: %v", err)
	}

	replacement := sampleTodo("dup")
	replacement.Title = "replaced"
	if _, err := s.Update(ctx, "dup", replacement); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := s.ListAll(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Title != "replaced" || got[1].Title != "second" {
		t.Fatalf("update should hit the first match only: %+v", got)
	}
}

func TestCorruptFileReadsAsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, sampleTodo("a")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupting file: %v", err)
	}

	if got := s.ListAll(ctx); len(got) != 0 {
		t.Fatalf("corrupt file should read as empty, got %+v", got)
	}
}

func TestConcurrentAddAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, sampleTodo("seed")); err != nil {
		t.Fatalf("add seed: %v", err)
	}

	const writers = 4
	const perWriter = 10

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("w%d-%d", w, i)
				if _, err := s.Add(ctx, sampleTodo(id)); err != nil {
					t.Errorf("add %s: %v", id, err)
				}
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Delete(ctx, "seed"); err != nil {
			t.Errorf("delete seed: %v", err)
		}
	}()
	wg.Wait()

	got := s.ListAll(ctx)
	if len(got) != writers*perWriter {
		t.Fatalf("lost update: expected %d items, got %d", writers*perWriter, len(got))
	}
	seen := make(map[string]bool, len(got))
	for _, todo := range got {
		if todo.ID == "seed" {
			t.Fatalf("deleted item survived")
		}
		if seen[todo.ID] {
			t.Fatalf("duplicate item %s", todo.ID)
		}
		seen[todo.ID] = true
	}
}
