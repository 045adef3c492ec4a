package main

import (
	"fmt"
	"time"

	"github.com/strutline/girder/internal/calendar"
)

const dayFormat = "2006-01-02"

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dayFormat)
}

// parseDay parses a YYYY-MM-DD flag value into a UTC midnight date.
func parseDay(flag, value string) (time.Time, error) {
	t, err := time.Parse(dayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", flag, value)
	}
	return calendar.DateOnly(t), nil
}

// pluralDays renders a working-day count for summaries.
func pluralDays(n int) string {
	if n == 1 {
		return "1 working day"
	}
	return fmt.Sprintf("%d working days", n)
}

func markCritical(critical bool) string {
	if critical {
		return "*"
	}
	return ""
}
