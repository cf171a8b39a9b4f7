package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/hyunjk/dday-todo/internal/model"
)

const dataFileName = "todos.json"

// FileStore persists the whole collection as one pretty-printed JSON array.
// Every mutation is a full read-modify-write cycle guarded by a mutex, so
// concurrent callers (the UI command path and the scheduler) serialize on
// the file and no write is lost.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

// DefaultDataDir returns the per-user data directory for the app,
// ~/.local/share/dday-todo, falling back to the working directory when the
// home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "dday-todo")
}

// NewFileStore creates the data directory if needed and returns a store
// backed by todos.json inside it.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return &FileStore{
		path:   filepath.Join(dir, dataFileName),
		logger: logger,
	}, nil
}

// Path returns the location of the persisted collection file.
func (s *FileStore) Path() string {
	return s.path
}

// load reads the persisted collection. Any failure, a missing file or
// unparseable content alike, reads as an empty collection; corruption is
// logged and otherwise swallowed so a broken file behaves like an empty
// store instead of crashing the app. Callers must hold s.mu.
func (s *FileStore) load() []model.Todo {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("unreadable todo file, treating as empty",
				"path", s.path, "error", err)
		}
		return []model.Todo{}
	}
	var todos []model.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		s.logger.Warn("corrupt todo file, treating as empty",
			"path", s.path, "error", err)
		return []model.Todo{}
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos
}

// save replaces the persisted collection wholesale. Callers must hold s.mu.
func (s *FileStore) save(todos []model.Todo) error {
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding todos: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// ListAll returns the current collection in insertion order.
func (s *FileStore) ListAll(ctx context.Context) []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends todo and writes the collection back. The append is committed
// only if the write succeeds.
func (s *FileStore) Add(ctx context.Context, todo model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := append(s.load(), todo)
	if err := s.save(todos); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// Update replaces the first item whose ID matches, keeping its position in
// the sequence. The collection on disk is untouched when the ID is absent
// or the write fails.
func (s *FileStore) Update(ctx context.Context, id string, todo model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.load()
	pos := -1
	for i, t := range todos {
		if t.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return model.Todo{}, fmt.Errorf("updating todo %s: %w", id, ErrNotFound)
	}
	todos[pos] = todo
	if err := s.save(todos); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// Delete removes all items with the given ID. Removing an absent ID is a
// no-op that still succeeds.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.load()
	kept := todos[:0]
	for _, t := range todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.save(kept)
}
