/*
errors.go - Centralized error types for the billing engine

PURPOSE:
  All error kinds originating in the engine, in one place. The engine never
  logs and never prints; it returns typed errors for the caller
  (API layer, renderer) to map onto its own surface.

ERROR CATEGORIES:
  1. Configuration errors - malformed invoice-day schedule
  2. Not-found errors - no tasks for a client or (client, billing date)

Malformed date strings are a precondition violation, not a handled error
kind: dates always originate from the engine's own prior computations or
from trusted stored records.

USAGE:
  if billing.IsNotFound(err) {
      // recoverable: present an empty state, keep going
  }
  if billing.IsConfiguration(err) {
      // fatal to the request: caller must fix or fall back to defaults
  }
*/
package billing

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptySchedule is returned when the invoice-day schedule has no
	// entries. The config loader defaults prevent this upstream, but the
	// engine checks anyway.
	ErrEmptySchedule = errors.New("invoice day schedule is empty")

	// ErrInvalidScheduleDay is returned when a schedule entry is outside [1, 31].
	ErrInvalidScheduleDay = errors.New("invoice day out of range")

	// ErrClientNotFound is returned when no tasks exist for the requested client.
	ErrClientNotFound = errors.New("no tasks for client")

	// ErrPeriodNotFound is returned when the client has tasks but none resolve
	// to the requested billing date.
	ErrPeriodNotFound = errors.New("no tasks for billing period")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError reports which client/period lookup came up empty.
type NotFoundError struct {
	Client      string
	BillingDate string // empty when the client itself was not found
}

func (e *NotFoundError) Error() string {
	if e.BillingDate == "" {
		return fmt.Sprintf("no tasks for client %q", e.Client)
	}
	return fmt.Sprintf("no tasks for client %q in billing period %s", e.Client, e.BillingDate)
}

func (e *NotFoundError) Unwrap() error {
	if e.BillingDate == "" {
		return ErrClientNotFound
	}
	return ErrPeriodNotFound
}

// ScheduleError reports an invalid schedule entry.
type ScheduleError struct {
	Day int
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("invoice day %d out of range [1, 31]", e.Day)
}

func (e *ScheduleError) Unwrap() error { return ErrInvalidScheduleDay }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error is a recoverable missing-data lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) || errors.Is(err, ErrPeriodNotFound)
}

// IsConfiguration reports whether the error indicates bad configuration,
// fatal to the operation requested.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrEmptySchedule) || errors.Is(err, ErrInvalidScheduleDay)
}
