/*
calendar.go - Billing date resolution and due dates

PURPOSE:
  Maps an arbitrary calendar date onto a billing-cycle boundary defined by
  a configurable set of "invoice days" (days of month on which billing
  cycles close), and computes due dates from payment terms.

RESOLUTION RULE:
  Given the sorted schedule, call the largest entry lastDay and the
  smallest firstDay.

  - A task dated strictly before lastDay bills on the smallest invoice day
    strictly greater than the task's day, in the same month.
  - A task dated on or after lastDay bills on firstDay of the NEXT month
    (rolling the year forward past December). A task landing exactly on
    lastDay belongs to the next cycle, not the closing one.

EXAMPLE (schedule [1, 15]):
  Jan 10 -> bills Jan 15, period "January 1-14 (Billed: January 15)"
  Jan 15 -> bills Feb 1,  period "January 15-31 (Billed: February 1)"
  Dec 20 -> bills Jan 1 of the following year

SEE ALSO:
  - aggregate.go: Buckets tasks by the billing date resolved here
  - invoice.go: Recomputes the label when assembling an invoice
*/
package billing

import (
	"fmt"
	"sort"
)

// =============================================================================
// SCHEDULE - The invoice-day configuration
// =============================================================================

// Schedule is the set of days-of-month on which billing cycles close.
// It may arrive unsorted and with duplicates from configuration; NewSchedule
// normalizes it. A Schedule must never be empty.
type Schedule []int

// NewSchedule validates, dedupes and sorts a raw invoice-day list.
func NewSchedule(days []int) (Schedule, error) {
	if len(days) == 0 {
		return nil, ErrEmptySchedule
	}
	seen := make(map[int]bool, len(days))
	out := make(Schedule, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 31 {
			return nil, &ScheduleError{Day: d}
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}

// First returns the smallest invoice day. Schedule must be normalized.
func (s Schedule) First() int { return s[0] }

// Last returns the largest invoice day. Schedule must be normalized.
func (s Schedule) Last() int { return s[len(s)-1] }

// nextAfter returns the smallest invoice day strictly greater than day.
// Caller guarantees day < Last().
func (s Schedule) nextAfter(day int) int {
	i := sort.SearchInts(s, day+1)
	return s[i]
}

// preceding returns the invoice day immediately before billingDay in the
// sorted schedule, wrapping to Last() when billingDay is the smallest entry.
func (s Schedule) preceding(billingDay int) int {
	i := sort.SearchInts(s, billingDay)
	if i == 0 {
		return s.Last()
	}
	return s[i-1]
}

// =============================================================================
// PERIOD RESOLUTION
// =============================================================================

// ResolvePeriod maps a task date onto its billing period. Pure function:
// identical inputs always yield identical output, and the raw schedule may
// be passed in any order.
func ResolvePeriod(on Date, days Schedule) (Period, error) {
	sched, err := NewSchedule(days)
	if err != nil {
		return Period{}, err
	}

	first, last := sched.First(), sched.Last()

	billYear, billMonth := on.Year(), on.Month()
	var billDay int
	if on.Day() < last {
		billDay = sched.nextAfter(on.Day())
	} else {
		// On or past the last invoice day: bill at firstDay of next month.
		billYear, billMonth = NextMonth(on.Year(), on.Month())
		billDay = first
	}

	// Period range, always expressed in the task's own month.
	var startDay, endDay int
	if billDay == first && billMonth != on.Month() {
		// Rolled into the next month: the period covers lastDay through the
		// end of the task's month (actual month length, leap years included).
		startDay = last
		endDay = DaysInMonth(on.Year(), on.Month())
	} else {
		prev := sched.preceding(billDay)
		if prev == first && billDay != first {
			startDay = 1
		} else {
			startDay = prev
		}
		endDay = billDay - 1
	}

	label := fmt.Sprintf("%s %d-%d (Billed: %s %d)",
		MonthName(on.Month()), startDay, endDay, MonthName(billMonth), billDay)

	return Period{
		BillingDate: NewDate(billYear, billMonth, billDay),
		Label:       label,
	}, nil
}

// DueDate adds paymentTermDays calendar days to the billing date. Standard
// calendar rollover applies; there is no business-day logic.
func DueDate(billingDate Date, paymentTermDays int) Date {
	return billingDate.AddDays(paymentTermDays)
}
