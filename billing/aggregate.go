/*
aggregate.go - Task grouping and line-item merging

PURPOSE:
  Partitions a task collection by client and resolved billing period, and
  merges the tasks of one period into invoice line items with deterministic
  ordering and exact totals.

MERGE KEY:
  Line items are keyed by (activityType, ticketReference-or-empty). Tasks
  lacking a ticket reference merge together under the empty key as long as
  activity types match. Tasks differing in either component never merge.

RATE WITHIN A GROUP:
  The line item carries the rate of the first task folded into the group.
  Rates are per-client snapshots, so a merge group normally holds a single
  rate; when it does not, the first-seen rate wins on the line while totals
  remain exact because they are summed per source task.
*/
package billing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// GROUPING - client -> billing date -> tasks
// =============================================================================

// GroupByClientAndPeriod buckets every task by (client, resolved billing
// date). The two-level map is built fresh on each call; insertion order
// within a bucket preserves input order.
func GroupByClientAndPeriod(tasks []Task, days Schedule) (map[string]map[string][]Task, error) {
	grouped := make(map[string]map[string][]Task)
	for _, task := range tasks {
		period, err := ResolvePeriod(task.Date, days)
		if err != nil {
			return nil, err
		}
		byDate := grouped[task.Client]
		if byDate == nil {
			byDate = make(map[string][]Task)
			grouped[task.Client] = byDate
		}
		key := period.BillingDate.String()
		byDate[key] = append(byDate[key], task)
	}
	return grouped, nil
}

// =============================================================================
// LINE-ITEM MERGING
// =============================================================================

// MergeLineItems merges the tasks of one billing period into line items.
// Result ordering: ascending by earliest date, ties broken by activity type.
func MergeLineItems(tasks []Task) []LineItem {
	index := make(map[string]int, len(tasks))
	items := make([]LineItem, 0, len(tasks))

	for _, task := range tasks {
		key := task.ActivityType + "|" + task.TicketReference
		i, ok := index[key]
		if !ok {
			index[key] = len(items)
			items = append(items, LineItem{
				ActivityType:    task.ActivityType,
				TicketReference: task.TicketReference,
				TotalHours:      task.HoursWorked,
				Rate:            task.Rate,
				EarliestDate:    task.Date,
				TaskIDs:         []string{task.ID},
			})
			continue
		}
		items[i].TotalHours = items[i].TotalHours.Add(task.HoursWorked)
		items[i].TaskIDs = append(items[i].TaskIDs, task.ID)
		if task.Date.Before(items[i].EarliestDate) {
			items[i].EarliestDate = task.Date
		}
	}

	// Stable sort keeps input encounter order for full ties, so results are
	// deterministic regardless of map iteration.
	sort.SliceStable(items, func(a, b int) bool {
		if !items[a].EarliestDate.Equal(items[b].EarliestDate) {
			return items[a].EarliestDate.Before(items[b].EarliestDate)
		}
		return items[a].ActivityType < items[b].ActivityType
	})
	return items
}

// =============================================================================
// TOTALS
// =============================================================================

// SumTasks computes total hours and amount across tasks. The amount is
// summed per source task, so mixed rates across merge groups stay exact.
// No rounding during accumulation; round only at presentation time.
func SumTasks(tasks []Task) Totals {
	totals := Totals{Hours: decimal.Zero, Amount: decimal.Zero}
	for _, task := range tasks {
		totals.Hours = totals.Hours.Add(task.HoursWorked)
		totals.Amount = totals.Amount.Add(task.Amount())
	}
	return totals
}
