/*
invoice.go - Invoice assembly

PURPOSE:
  Composes one finished Invoice for a (client, billing date) pair out of
  the grouping and merging primitives, plus the small lookup utilities
  that feed client/period selection at the boundary.

STATELESS:
  Nothing here holds state between calls. Every operation is a pure
  function of (tasks, settings), so repeated or parallel invocation is
  always safe. The whole task collection is re-scanned on each call; this
  is a full-scan design sized for a single user's task log.
*/
package billing

import (
	"sort"
)

// BuildInvoice assembles the invoice for client at billingDate (ISO string).
// Returns a NotFoundError when the client has no tasks at all, or none that
// resolve to the requested billing date. Never mutates its inputs.
func BuildInvoice(tasks []Task, client, billingDate string, settings Settings) (Invoice, error) {
	var mine []Task
	for _, task := range tasks {
		if task.Client == client { // exact, case-sensitive identity
			mine = append(mine, task)
		}
	}
	if len(mine) == 0 {
		return Invoice{}, &NotFoundError{Client: client}
	}

	grouped, err := GroupByClientAndPeriod(mine, settings.Schedule)
	if err != nil {
		return Invoice{}, err
	}
	bucket := grouped[client][billingDate]
	if len(bucket) == 0 {
		return Invoice{}, &NotFoundError{Client: client, BillingDate: billingDate}
	}

	// All tasks in the bucket resolve to the same period by construction,
	// so any one of them yields the label.
	period, err := ResolvePeriod(bucket[0].Date, settings.Schedule)
	if err != nil {
		return Invoice{}, err
	}

	totals := SumTasks(bucket)
	return Invoice{
		Client:      client,
		BillingDate: period.BillingDate,
		DueDate:     DueDate(period.BillingDate, settings.PaymentTermDays),
		PeriodLabel: period.Label,
		Lines:       MergeLineItems(bucket),
		TotalHours:  totals.Hours,
		TotalAmount: totals.Amount,
	}, nil
}

// ClientNames returns the sorted distinct client values across all tasks.
func ClientNames(tasks []Task) []string {
	seen := make(map[string]bool)
	var names []string
	for _, task := range tasks {
		if !seen[task.Client] {
			seen[task.Client] = true
			names = append(names, task.Client)
		}
	}
	sort.Strings(names)
	return names
}

// BillingDatesForClient returns the sorted distinct billing dates the
// client's tasks resolve to. ISO date strings sort chronologically.
func BillingDatesForClient(tasks []Task, client string, days Schedule) ([]string, error) {
	seen := make(map[string]bool)
	var dates []string
	for _, task := range tasks {
		if task.Client != client {
			continue
		}
		period, err := ResolvePeriod(task.Date, days)
		if err != nil {
			return nil, err
		}
		key := period.BillingDate.String()
		if !seen[key] {
			seen[key] = true
			dates = append(dates, key)
		}
	}
	sort.Strings(dates)
	return dates, nil
}
