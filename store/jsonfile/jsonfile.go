/*
Package jsonfile persists the task log as a single JSON array on disk.

PURPOSE:
  The durable format is one JSON array of task objects, rewritten whole on
  every append. There are no transaction guarantees beyond the whole-file
  overwrite; this is sized for a single user's task log, not a shared
  database.

CONCURRENCY:
  A mutex serializes file access within the process. Cross-process
  coordination is out of scope.

SEE ALSO:
  - store/sqlite: SQLite-backed alternative for larger logs
  - store/memory: In-memory implementation for tests
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fluteroute/task-management/billing"
)

type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store backed by the JSON file at path. The file is created
// on first append; a missing file reads as an empty log.
func New(path string) *Store {
	return &Store{path: path}
}

// Append rewrites the file with the task added at the end of the log.
func (s *Store) Append(_ context.Context, task billing.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(tasks, task))
}

// Load returns the full ordered task collection.
func (s *Store) Load(_ context.Context) ([]billing.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() ([]billing.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var tasks []billing.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task file %s: %w", s.path, err)
	}
	return tasks, nil
}

func (s *Store) write(tasks []billing.Task) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create task directory: %w", err)
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}

	// Write to a sibling temp file first so a crash mid-write never leaves
	// a truncated log behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write task file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
