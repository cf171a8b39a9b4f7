package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// FiredLedger records, per item and day-offset, the calendar date on which
// a reminder already fired. It backs the optional per-day dedupe: with the
// ledger consulted, firing is idempotent per day regardless of how the
// check cadence lines up with the clock.
type FiredLedger struct {
	db *sqlx.DB
}

// NewFiredLedger opens (or creates) the ledger database at dbPath, enables
// WAL mode, and runs any pending schema migrations.
func NewFiredLedger(dbPath string) (*FiredLedger, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	// WAL keeps scheduler writes from blocking concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	l := &FiredLedger{db: db}
	if err := l.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return l, nil
}

// Close closes the underlying database connection.
func (l *FiredLedger) Close() error {
	return l.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (l *FiredLedger) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := l.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = l.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := l.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// WasFired reports whether the item already fired for the given offset on
// the given calendar day ("YYYY-MM-DD").
func (l *FiredLedger) WasFired(ctx context.Context, itemID string, offset int, day string) (bool, error) {
	var count int
	err := l.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM fired WHERE item_id = ? AND day_offset = ? AND fired_on = ?",
		itemID, offset, day,
	)
	if err != nil {
		return false, fmt.Errorf("querying fired ledger: %w", err)
	}
	return count > 0, nil
}

// MarkFired records a fire for the item/offset on the given calendar day.
// Recording the same fire twice is a no-op.
func (l *FiredLedger) MarkFired(ctx context.Context, itemID string, offset int, day string) error {
	_, err := l.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO fired (item_id, day_offset, fired_on) VALUES (?, ?, ?)",
		itemID, offset, day,
	)
	if err != nil {
		return fmt.Errorf("recording fire for %s: %w", itemID, err)
	}
	return nil
}

// Prune drops ledger rows older than the given calendar day. The ledger
// only ever needs the current day to dedupe, so old rows are dead weight.
func (l *FiredLedger) Prune(ctx context.Context, before string) error {
	_, err := l.db.ExecContext(ctx, "DELETE FROM fired WHERE fired_on < ?", before)
	if err != nil {
		return fmt.Errorf("pruning fired ledger: %w", err)
	}
	return nil
}
