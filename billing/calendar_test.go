package billing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fluteroute/task-management/billing"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(y int, m time.Month, d int) billing.Date {
	return billing.NewDate(y, m, d)
}

func resolve(t *testing.T, on billing.Date, days []int) billing.Period {
	t.Helper()
	period, err := billing.ResolvePeriod(on, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return period
}

// =============================================================================
// RESOLUTION TESTS
// =============================================================================

func TestResolvePeriod_Idempotent(t *testing.T) {
	// GIVEN: Any date and schedule
	// WHEN: Resolving twice with identical inputs
	// THEN: Output is identical (pure function)

	on := date(2024, time.March, 7)
	a := resolve(t, on, []int{1, 15})
	b := resolve(t, on, []int{1, 15})

	if a != b {
		t.Errorf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestResolvePeriod_ScheduleOrderIndependent(t *testing.T) {
	// GIVEN: The same schedule in two different orders
	// WHEN: Resolving any date
	// THEN: Results are identical

	on := date(2024, time.March, 7)
	sorted := resolve(t, on, []int{1, 15})
	unsorted := resolve(t, on, []int{15, 1})

	if sorted != unsorted {
		t.Errorf("schedule order changed result: %+v vs %+v", sorted, unsorted)
	}
}

func TestResolvePeriod_MidPeriod_BillsSameMonth(t *testing.T) {
	// GIVEN: Schedule [1, 15], a task on March 1
	// WHEN: Resolving
	// THEN: Bills March 15, period "1-14"

	period := resolve(t, date(2024, time.March, 1), []int{1, 15})

	if got := period.BillingDate.String(); got != "2024-03-15" {
		t.Errorf("expected billing date 2024-03-15, got %s", got)
	}
	if period.Label != "March 1-14 (Billed: March 15)" {
		t.Errorf("unexpected label: %q", period.Label)
	}
}

func TestResolvePeriod_OnLastInvoiceDay_RollsToNextMonth(t *testing.T) {
	// GIVEN: Schedule [1, 15], a task exactly on the 15th
	// WHEN: Resolving
	// THEN: It is NOT in the pre-15th bucket; it bills the 1st of next month

	period := resolve(t, date(2024, time.March, 15), []int{1, 15})

	if got := period.BillingDate.String(); got != "2024-04-01" {
		t.Errorf("expected billing date 2024-04-01, got %s", got)
	}
	if period.Label != "March 15-31 (Billed: April 1)" {
		t.Errorf("unexpected label: %q", period.Label)
	}
}

func TestResolvePeriod_FebruaryMonthLength(t *testing.T) {
	// GIVEN: Schedule [1, 15], tasks late in February
	// WHEN: Resolving for a leap year and a common year
	// THEN: Period end uses the actual month length (29 vs 28)

	leap := resolve(t, date(2024, time.February, 20), []int{1, 15})
	if leap.Label != "February 15-29 (Billed: March 1)" {
		t.Errorf("leap year label: %q", leap.Label)
	}

	common := resolve(t, date(2023, time.February, 20), []int{1, 15})
	if common.Label != "February 15-28 (Billed: March 1)" {
		t.Errorf("common year label: %q", common.Label)
	}
}

func TestResolvePeriod_DecemberRollsYearForward(t *testing.T) {
	// GIVEN: Schedule [1, 15], a task on December 20
	// WHEN: Resolving
	// THEN: Bills January 1 of the FOLLOWING year

	period := resolve(t, date(2024, time.December, 20), []int{1, 15})

	if got := period.BillingDate.String(); got != "2025-01-01" {
		t.Errorf("expected billing date 2025-01-01, got %s", got)
	}
	if period.Label != "December 15-31 (Billed: January 1)" {
		t.Errorf("unexpected label: %q", period.Label)
	}
}

func TestResolvePeriod_ThreePointSchedule(t *testing.T) {
	// GIVEN: Schedule [1, 10, 20]
	// WHEN: Resolving dates across all three buckets
	// THEN: Each bucket bills on its own boundary with the right range

	cases := []struct {
		day         int
		billingDate string
		label       string
	}{
		{5, "2024-06-10", "June 1-9 (Billed: June 10)"},
		{15, "2024-06-20", "June 10-19 (Billed: June 20)"},
		{25, "2024-07-01", "June 20-30 (Billed: July 1)"},
	}

	for _, tc := range cases {
		period := resolve(t, date(2024, time.June, tc.day), []int{1, 10, 20})
		if got := period.BillingDate.String(); got != tc.billingDate {
			t.Errorf("day %d: expected billing date %s, got %s", tc.day, tc.billingDate, got)
		}
		if period.Label != tc.label {
			t.Errorf("day %d: expected label %q, got %q", tc.day, tc.label, period.Label)
		}
	}
}

func TestResolvePeriod_EmptySchedule(t *testing.T) {
	// GIVEN: An empty schedule (should be prevented upstream)
	// WHEN: Resolving
	// THEN: ErrEmptySchedule, defensively

	_, err := billing.ResolvePeriod(date(2024, time.March, 1), nil)
	if !errors.Is(err, billing.ErrEmptySchedule) {
		t.Errorf("expected ErrEmptySchedule, got %v", err)
	}
	if !billing.IsConfiguration(err) {
		t.Errorf("expected a configuration error, got %v", err)
	}
}

func TestNewSchedule_RejectsOutOfRangeDays(t *testing.T) {
	// GIVEN: A schedule with a day outside [1, 31]
	// WHEN: Normalizing
	// THEN: ScheduleError wrapping ErrInvalidScheduleDay

	_, err := billing.NewSchedule([]int{1, 32})
	if !errors.Is(err, billing.ErrInvalidScheduleDay) {
		t.Errorf("expected ErrInvalidScheduleDay, got %v", err)
	}

	var schedErr *billing.ScheduleError
	if !errors.As(err, &schedErr) || schedErr.Day != 32 {
		t.Errorf("expected ScheduleError for day 32, got %v", err)
	}
}

func TestNewSchedule_DedupesAndSorts(t *testing.T) {
	sched, err := billing.NewSchedule([]int{20, 1, 10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sched) != 3 || sched[0] != 1 || sched[1] != 10 || sched[2] != 20 {
		t.Errorf("expected [1 10 20], got %v", sched)
	}
}

// =============================================================================
// DUE DATE TESTS
// =============================================================================

func TestDueDate_SimpleAddition(t *testing.T) {
	due := billing.DueDate(billing.MustParseDate("2024-01-01"), 15)
	if got := due.String(); got != "2024-01-16" {
		t.Errorf("expected 2024-01-16, got %s", got)
	}
}

func TestDueDate_RollsAcrossYearBoundary(t *testing.T) {
	due := billing.DueDate(billing.MustParseDate("2024-12-20"), 15)
	if got := due.String(); got != "2025-01-04" {
		t.Errorf("expected 2025-01-04, got %s", got)
	}
}
