package store

import (
	"context"
	"errors"

	"github.com/hyunjk/dday-todo/internal/model"
)

// ErrNotFound is returned by Update when no item with the given ID exists.
var ErrNotFound = errors.New("todo not found")

// Store defines the persistence interface for D-Day items. The collection
// keeps insertion order; lookups by ID return the first match.
type Store interface {
	// ListAll returns the current collection. A missing or unreadable
	// persisted file reads as an empty collection, never an error.
	ListAll(ctx context.Context) []model.Todo

	// Add appends a todo and persists the collection. The append is not
	// durable unless the returned error is nil.
	Add(ctx context.Context, todo model.Todo) (model.Todo, error)

	// Update replaces the first item with the given ID in place,
	// preserving its position. Returns ErrNotFound when no item matches;
	// the collection is unchanged in that case.
	Update(ctx context.Context, id string, todo model.Todo) (model.Todo, error)

	// Delete removes every item with the given ID and persists the
	// result. Deleting an absent ID succeeds.
	Delete(ctx context.Context, id string) error
}
