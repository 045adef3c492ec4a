package schedule

import (
	"math"
	"time"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
)

// applyProgress clips the raw early dates for actual progress and the data
// date. The two modes treat out-of-sequence progress differently and are
// implemented as distinct paths.
func applyProgress(a *ScheduledActivity, cal *calendar.Calendar, in Input) {
	if in.Mode == models.ProgressOverride {
		applyProgressOverride(a, cal, in.DataDate)
		return
	}
	applyRetainedLogic(a, cal, in.DataDate)
}

// applyRetainedLogic keeps network logic authoritative: an actual start
// pins the early start, remaining work is projected from the data date but
// never earlier than the calendar-derived finish, and unstarted work is
// clipped forward so nothing is scheduled before the data date.
func applyRetainedLogic(a *ScheduledActivity, cal *calendar.Calendar, dataDate *time.Time) {
	if a.ActualStart != nil {
		a.EarlyStart = calendar.DateOnly(*a.ActualStart)
		a.EarlyFinish = cal.AddWorkingDays(a.EarlyStart, a.Duration)
	}
	switch a.Status {
	case models.StatusCompleted:
		if a.ActualFinish != nil {
			a.EarlyFinish = calendar.DateOnly(*a.ActualFinish)
		}
	case models.StatusInProgress:
		if dataDate != nil {
			projected := cal.AddWorkingDays(calendar.DateOnly(*dataDate), remainingDays(a))
			if projected.After(a.EarlyFinish) {
				a.EarlyFinish = projected
			}
		}
	default:
		if dataDate != nil {
			dd := calendar.DateOnly(*dataDate)
			if a.EarlyStart.Before(dd) {
				a.EarlyStart = dd
				a.EarlyFinish = cal.AddWorkingDays(dd, a.Duration)
			}
		}
	}
}

// applyProgressOverride lets recorded progress override network logic:
// remaining work of a started activity is scheduled from the data date
// regardless of where its predecessors land. Without a data date there is
// nothing to override and the retained-logic path applies.
func applyProgressOverride(a *ScheduledActivity, cal *calendar.Calendar, dataDate *time.Time) {
	if dataDate == nil {
		applyRetainedLogic(a, cal, nil)
		return
	}
	dd := calendar.DateOnly(*dataDate)
	switch a.Status {
	case models.StatusCompleted:
		if a.ActualStart != nil {
			a.EarlyStart = calendar.DateOnly(*a.ActualStart)
		}
		if a.ActualFinish != nil {
			a.EarlyFinish = calendar.DateOnly(*a.ActualFinish)
		} else {
			a.EarlyFinish = cal.AddWorkingDays(a.EarlyStart, a.Duration)
		}
	case models.StatusInProgress:
		if a.ActualStart != nil {
			a.EarlyStart = calendar.DateOnly(*a.ActualStart)
		} else {
			a.EarlyStart = dd
		}
		a.EarlyFinish = cal.AddWorkingDays(dd, remainingDays(a))
	default:
		if a.EarlyStart.Before(dd) {
			a.EarlyStart = dd
			a.EarlyFinish = cal.AddWorkingDays(dd, a.Duration)
		}
	}
}

// remainingDays is the explicit remaining duration when set, else derived
// from percent complete, rounded up so partial days stay on the schedule.
func remainingDays(a *ScheduledActivity) int {
	if a.RemainingDuration > 0 {
		return a.RemainingDuration
	}
	rem := float64(a.Duration) * (100 - a.PercentComplete) / 100
	return int(math.Ceil(rem))
}
