// Package calendar implements the working-time model for the scheduling
// engine: weekday masks, date-specific exceptions, and working-day
// date arithmetic.
package calendar

import "time"

// DefaultID is the calendar assigned to activities that name none.
const DefaultID = "default"

// Exception overrides the weekday mask for a single date, marking it
// working (a make-up day) or non-working (a holiday).
type Exception struct {
	Date    time.Time `yaml:"date"`
	Working bool      `yaml:"working"`
	Name    string    `yaml:"name,omitempty"`
}

// Calendar classifies dates as working or non-working and performs
// working-day arithmetic. Weekdays is indexed by time.Weekday.
type Calendar struct {
	ID          string
	Name        string
	Weekdays    [7]bool
	HoursPerDay float64
	Exceptions  []Exception
}

// Default returns the standard five-day calendar: Monday through Friday
// working, 8 hours per day, no exceptions.
func Default() *Calendar {
	return &Calendar{
		ID:   DefaultID,
		Name: "Standard 5-day",
		Weekdays: [7]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		HoursPerDay: 8,
	}
}

// DateOnly truncates t to midnight UTC. All schedule arithmetic happens on
// day-granular dates.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWorkingDay reports whether d is a working day. An exact-date exception
// wins over the weekday mask.
func (c *Calendar) IsWorkingDay(d time.Time) bool {
	d = DateOnly(d)
	for _, ex := range c.Exceptions {
		if DateOnly(ex.Date).Equal(d) {
			return ex.Working
		}
	}
	return c.Weekdays[d.Weekday()]
}

// HasWorkingWeekday reports whether at least one weekday is working.
// A calendar without one can never advance a date and is rejected at
// input validation.
func (c *Calendar) HasWorkingWeekday() bool {
	for _, working := range c.Weekdays {
		if working {
			return true
		}
	}
	return false
}

// AddWorkingDays walks forward from start one calendar day at a time until
// n working days have been counted. n = 0 returns start unchanged, which
// zero-duration milestones rely on. Negative n walks backward.
func (c *Calendar) AddWorkingDays(start time.Time, n int) time.Time {
	if n < 0 {
		return c.SubtractWorkingDays(start, -n)
	}
	d := DateOnly(start)
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, 1)
		if c.IsWorkingDay(d) {
			counted++
		}
	}
	return d
}

// SubtractWorkingDays is the symmetric backward walk from end.
func (c *Calendar) SubtractWorkingDays(end time.Time, n int) time.Time {
	if n < 0 {
		return c.AddWorkingDays(end, -n)
	}
	d := DateOnly(end)
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, -1)
		if c.IsWorkingDay(d) {
			counted++
		}
	}
	return d
}

// WorkingDaysBetween returns the signed count of working days strictly
// after a, up to and including b. It inverts AddWorkingDays: for b >= a,
// AddWorkingDays(a, WorkingDaysBetween(a, b)) lands on b whenever b is a
// working day.
func (c *Calendar) WorkingDaysBetween(a, b time.Time) int {
	a, b = DateOnly(a), DateOnly(b)
	if b.Before(a) {
		return -c.WorkingDaysBetween(b, a)
	}
	n := 0
	for d := a; d.Before(b); {
		d = d.AddDate(0, 0, 1)
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n
}
