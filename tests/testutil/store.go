package testutil

import (
	"log/slog"
	"testing"

	"github.com/hyunjk/dday-todo/internal/store"
)

// NewTestStore creates a FileStore backed by a per-test temp directory.
func NewTestStore(t *testing.T) *store.FileStore {
	t.Helper()

	s, err := store.NewFileStore(t.TempDir(), slog.Default())
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	return s
}

// NewTestLedger creates an in-memory FiredLedger with all migrations
// applied. It automatically closes the ledger when the test completes.
func NewTestLedger(t *testing.T) *store.FiredLedger {
	t.Helper()

	l, err := store.NewFiredLedger(":memory:")
	if err != nil {
		t.Fatalf("creating test ledger: %v", err)
	}

	t.Cleanup(func() {
		if err := l.Close(); err != nil {
			t.Errorf("closing test ledger: %v", err)
		}
	})

	return l
}
