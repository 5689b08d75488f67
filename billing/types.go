/*
Package billing provides the core invoicing engine.

PURPOSE:
  This package contains the pure computation at the heart of the task
  management system: resolving arbitrary calendar dates onto billing-cycle
  boundaries, grouping logged work sessions into billing periods, merging
  them into invoice line items, and assembling finished invoices.

KEY CONCEPTS IN THIS FILE (types.go):
  - Task: An immutable record of a logged work session
  - Period: A resolved billing period (billing date + human label)
  - LineItem: Merged tasks sharing (activity, ticket) within a period
  - Invoice: The finished, ordered, totalled invoice structure

DESIGN PRINCIPLES:
  1. Purity: Every operation is a function of its explicit inputs.
     No global configuration, no I/O, no logging.
  2. Precision: Uses decimal.Decimal for hours, rates and amounts to
     avoid floating-point errors. Rounding happens only at display time.
  3. Immutability: Tasks are never mutated; invoices and groupings are
     freshly built on every call.

SEE ALSO:
  - calendar.go: Billing date resolution and due dates
  - aggregate.go: Grouping and line-item merging
  - invoice.go: Invoice assembly
*/
package billing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TASK - A logged work session (immutable once created)
// =============================================================================

// Task is one logged work session. Rate is snapshotted at creation time
// and never recomputed retroactively.
type Task struct {
	ID              string          `json:"id"`
	Date            Date            `json:"date"`
	Time            string          `json:"time,omitempty"` // clock time, display only
	ActivityType    string          `json:"activity_type"`
	TicketReference string          `json:"ticket_reference,omitempty"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	Client          string          `json:"client"`
	Rate            decimal.Decimal `json:"rate"`
}

// Amount returns the billable amount for this single task.
func (t Task) Amount() decimal.Decimal { return t.HoursWorked.Mul(t.Rate) }

// =============================================================================
// PERIOD - A resolved billing period (computed, never persisted)
// =============================================================================

// Period is the billing period a task date resolves to. It is derived
// deterministically from a date and a Schedule and always recomputed.
type Period struct {
	// BillingDate is the resolved closing/invoice date.
	BillingDate Date

	// Label is the human-readable period description, e.g.
	// "March 1-14 (Billed: March 15)".
	Label string
}

// =============================================================================
// LINE ITEM - Merged tasks within one period
// =============================================================================

// LineItem is a merged group of tasks sharing the same activity type and
// ticket reference. Tasks without a ticket reference merge under the
// empty-reference key as long as activity types match.
type LineItem struct {
	ActivityType    string          `json:"activity_type"`
	TicketReference string          `json:"ticket_reference,omitempty"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	Rate            decimal.Decimal `json:"rate"`
	EarliestDate    Date            `json:"earliest_date"`
	TaskIDs         []string        `json:"task_ids"`
}

// Amount returns the billable amount for the merged group.
func (li LineItem) Amount() decimal.Decimal { return li.TotalHours.Mul(li.Rate) }

// =============================================================================
// INVOICE - The finished structure (computed, never persisted)
// =============================================================================

// Invoice is the assembled invoice for one (client, billing date) pair.
type Invoice struct {
	Client      string          `json:"client"`
	BillingDate Date            `json:"billing_date"`
	DueDate     Date            `json:"due_date"`
	PeriodLabel string          `json:"period_label"`
	Lines       []LineItem      `json:"lines"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Totals holds summed hours and amount for a set of tasks or line items.
type Totals struct {
	Hours  decimal.Decimal `json:"hours"`
	Amount decimal.Decimal `json:"amount"`
}

// Settings is the caller-owned configuration threaded into every core call.
// The engine never loads or caches configuration itself; the config package
// produces one of these and the caller passes it in.
type Settings struct {
	Schedule        Schedule
	PaymentTermDays int
}
