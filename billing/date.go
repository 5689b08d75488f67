package billing

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 format used for all persisted and displayed dates.
const DateFormat = "2006-01-02"

// =============================================================================
// DATE - Calendar date with day granularity (no time zone semantics)
// =============================================================================

// Date is a calendar date. All dates in the engine are plain civil dates;
// the underlying time.Time is pinned to midnight UTC purely as a canonical
// representation.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", s, DateFormat, err)
	}
	return Date{t: t}, nil
}

// MustParseDate is like ParseDate but panics on error. For tests and literals.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(x Date) bool { return d.t.Before(x.t) }
func (d Date) After(x Date) bool  { return d.t.After(x.t) }
func (d Date) Equal(x Date) bool  { return d.t.Equal(x.t) }
func (d Date) IsZero() bool       { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// String formats the date as ISO "YYYY-MM-DD" (zero padded).
func (d Date) String() string { return d.t.Format(DateFormat) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// =============================================================================
// MONTH UTILITIES
// =============================================================================

// DaysInMonth returns the number of calendar days in the given month,
// accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextMonth returns the month following (year, month), rolling the year
// forward past December.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// MonthName returns the fixed English month name. time.Month's String is a
// code-defined table, so labels are deterministic regardless of locale.
func MonthName(month time.Month) string { return month.String() }
