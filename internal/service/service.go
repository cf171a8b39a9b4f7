// Package service is the command surface the UI talks to: thin CRUD
// pass-throughs over the store with user-facing error translation.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hyunjk/dday-todo/internal/model"
	"github.com/hyunjk/dday-todo/internal/store"
)

// Service exposes the four UI-facing operations. It holds no cached copy
// of the collection; every call re-reads the current persisted state.
type Service struct {
	store store.Store
}

// New creates a Service over the given store.
func New(s store.Store) *Service {
	return &Service{store: s}
}

// GetAll returns the current collection in insertion order.
func (s *Service) GetAll(ctx context.Context) []model.Todo {
	return s.store.ListAll(ctx)
}

// Add persists a new todo and returns the stored item. Generates a UUID
// when the caller supplies no ID, and stamps CreatedAt when unset. The
// store itself accepts duplicate IDs; uniqueness is enforced here.
func (s *Service) Add(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	} else {
		for _, existing := range s.store.ListAll(ctx) {
			if existing.ID == todo.ID {
				return model.Todo{}, fmt.Errorf("a todo with id %s already exists", todo.ID)
			}
		}
	}
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = time.Now()
	}

	saved, err := s.store.Add(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("could not save the todo: %w", err)
	}
	return saved, nil
}

// Update replaces the todo with the given ID and returns the replacement.
func (s *Service) Update(ctx context.Context, id string, todo model.Todo) (model.Todo, error) {
	updated, err := s.store.Update(ctx, id, todo)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Todo{}, fmt.Errorf("no todo with id %s: %w", id, store.ErrNotFound)
		}
		return model.Todo{}, fmt.Errorf("could not save the todo: %w", err)
	}
	return updated, nil
}

// Delete removes the todo with the given ID. Deleting an unknown ID
// succeeds silently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not save the todo list: %w", err)
	}
	return nil
}

// Remaining counts the incomplete items, for the "N in progress" badge.
func (s *Service) Remaining(ctx context.Context) int {
	n := 0
	for _, t := range s.store.ListAll(ctx) {
		if !t.Completed {
			n++
		}
	}
	return n
}
