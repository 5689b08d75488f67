/*
Package sqlite provides a SQLite-backed implementation of the task store.

PURPOSE:
  A durable alternative to the JSON file store for larger task logs.
  Implements tasklog.Store with an append-only tasks table.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on the tasks table
  - No DELETE statements on the tasks table
  Task records are immutable once logged.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

NUMERIC COLUMNS:
  Hours and rates are stored as decimal strings, not floats, so values
  round-trip exactly through shopspring/decimal.

USAGE:
  store, err := sqlite.New("./tasks.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - tasklog: Store interface definition
  - store/jsonfile: JSON file implementation
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/fluteroute/task-management/billing"
)

// Store implements tasklog.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Tasks (append-only log of work sessions)
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT,
		activity_type TEXT NOT NULL,
		ticket_reference TEXT,
		hours_worked TEXT NOT NULL,
		client TEXT NOT NULL,
		rate TEXT NOT NULL,
		seq INTEGER  -- insertion order, preserved across reads
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_client ON tasks(client);
	CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append persists one task at the end of the log.
func (s *Store) Append(ctx context.Context, task billing.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, date, time, activity_type, ticket_reference, hours_worked, client, rate, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks))`,
		task.ID,
		task.Date.String(),
		task.Time,
		task.ActivityType,
		task.TicketReference,
		task.HoursWorked.String(),
		task.Client,
		task.Rate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to append task: %w", err)
	}
	return nil
}

// Load returns the full task collection in insertion order.
func (s *Store) Load(ctx context.Context) ([]billing.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, time, activity_type, ticket_reference, hours_worked, client, rate
		FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []billing.Task
	for rows.Next() {
		var (
			task              billing.Task
			dateStr           string
			clock, ticket     sql.NullString
			hoursStr, rateStr string
		)
		if err := rows.Scan(&task.ID, &dateStr, &clock, &task.ActivityType, &ticket, &hoursStr, &task.Client, &rateStr); err != nil {
			return nil, err
		}

		task.Date, err = billing.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt task %s: %w", task.ID, err)
		}
		task.HoursWorked, err = decimal.NewFromString(hoursStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt task %s: %w", task.ID, err)
		}
		task.Rate, err = decimal.NewFromString(rateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt task %s: %w", task.ID, err)
		}
		task.Time = clock.String
		task.TicketReference = ticket.String

		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
