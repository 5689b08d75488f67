/*
Package tasklog implements the task log domain on top of the billing engine.

PURPOSE:
  Owns task creation (validation and the rate snapshot) and the read-side
  operations the presentation layer needs: clients, billing periods, and
  assembled invoices. The engine stays pure; this package is where the
  store and configuration meet it.

RATE SNAPSHOT:
  A task's rate is looked up from configuration once, when the task is
  logged, and stored on the record. It is never recomputed retroactively;
  later rate changes affect only new tasks.

SEE ALSO:
  - billing: the pure computation this package feeds
  - store/jsonfile, store/sqlite, store/memory: Store implementations
*/
package tasklog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fluteroute/task-management/billing"
	"github.com/fluteroute/task-management/config"
)

// =============================================================================
// STORE - Append-only task persistence
// =============================================================================

// Store persists the task log. Append-only: tasks are never updated or
// deleted; the log is reloaded in full on every read.
type Store interface {
	// Append persists one task at the end of the log.
	Append(ctx context.Context, task billing.Task) error

	// Load returns the full ordered task collection.
	Load(ctx context.Context) ([]billing.Task, error)
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

var (
	ErrEmptyClient      = errors.New("client must not be empty")
	ErrEmptyActivity    = errors.New("activity type must not be empty")
	ErrNonPositiveHours = errors.New("hours worked must be positive")
)

// =============================================================================
// TASK CREATION
// =============================================================================

// LogRequest is the input for logging one work session.
type LogRequest struct {
	Date            billing.Date
	Time            string // clock time, display only
	ActivityType    string
	TicketReference string
	HoursWorked     decimal.Decimal
	Client          string
}

// NewTask validates a request and builds an immutable task record with a
// fresh ID and the given snapshotted rate.
func NewTask(req LogRequest, rate decimal.Decimal) (billing.Task, error) {
	if req.Client == "" {
		return billing.Task{}, ErrEmptyClient
	}
	if req.ActivityType == "" {
		return billing.Task{}, ErrEmptyActivity
	}
	if !req.HoursWorked.IsPositive() {
		return billing.Task{}, ErrNonPositiveHours
	}
	if req.Date.IsZero() {
		return billing.Task{}, fmt.Errorf("date must be set")
	}

	return billing.Task{
		ID:              uuid.NewString(),
		Date:            req.Date,
		Time:            req.Time,
		ActivityType:    req.ActivityType,
		TicketReference: req.TicketReference,
		HoursWorked:     req.HoursWorked,
		Client:          req.Client,
		Rate:            rate,
	}, nil
}

// =============================================================================
// SERVICE - Store + configuration wired to the engine
// =============================================================================

// Service combines a task store with a configuration value and exposes the
// operations the API layer serves. It holds no state of its own beyond its
// dependencies; every read re-scans the log.
type Service struct {
	store Store
	cfg   *config.Config
}

func NewService(store Store, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// Log validates, snapshots the client's configured rate, and appends.
func (s *Service) Log(ctx context.Context, req LogRequest) (billing.Task, error) {
	task, err := NewTask(req, s.cfg.RateFor(req.Client))
	if err != nil {
		return billing.Task{}, err
	}
	if err := s.store.Append(ctx, task); err != nil {
		return billing.Task{}, err
	}
	return task, nil
}

// Tasks returns the full task log in stored order.
func (s *Service) Tasks(ctx context.Context) ([]billing.Task, error) {
	return s.store.Load(ctx)
}

// Clients returns the sorted distinct client names in the log.
func (s *Service) Clients(ctx context.Context) ([]string, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return billing.ClientNames(tasks), nil
}

// BillingDates returns the sorted billing dates the client's tasks resolve to.
func (s *Service) BillingDates(ctx context.Context, client string) ([]string, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.cfg.Settings()
	if err != nil {
		return nil, err
	}
	return billing.BillingDatesForClient(tasks, client, settings.Schedule)
}

// Invoice assembles the invoice for (client, billingDate).
func (s *Service) Invoice(ctx context.Context, client, billingDate string) (billing.Invoice, error) {
	tasks, err := s.store.Load(ctx)
	if err != nil {
		return billing.Invoice{}, err
	}
	settings, err := s.cfg.Settings()
	if err != nil {
		return billing.Invoice{}, err
	}
	return billing.BuildInvoice(tasks, client, billingDate, settings)
}
