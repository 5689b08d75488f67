// Package memory provides an in-memory task store for testing and dev.
package memory

import (
	"context"
	"sync"

	"github.com/fluteroute/task-management/billing"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu    sync.RWMutex
	tasks []billing.Task
}

func New() *Store {
	return &Store{}
}

// Append adds a single task. Append-only.
func (m *Store) Append(_ context.Context, task billing.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, task)
	return nil
}

// Load returns a copy of the full task log in insertion order.
func (m *Store) Load(_ context.Context) ([]billing.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]billing.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}
