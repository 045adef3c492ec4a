package schedule

import (
	"fmt"
	"time"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
)

func formatDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// applyEarlyConstraint adjusts early dates for the constraint kinds that
// bound them. Infeasible pins are recorded as violations on the activity,
// never as errors; the dates are still pinned so float reflects the
// constraint.
func applyEarlyConstraint(a *ScheduledActivity, cal *calendar.Calendar) {
	if a.Constraint == models.ConstraintNone || a.ConstraintDate == nil {
		return
	}
	date := calendar.DateOnly(*a.ConstraintDate)
	switch a.Constraint {
	case models.StartNoEarlierThan:
		if a.EarlyStart.Before(date) {
			a.EarlyStart = date
			a.EarlyFinish = cal.AddWorkingDays(date, a.Duration)
		}
	case models.FinishNoEarlierThan:
		if a.EarlyFinish.Before(date) {
			a.EarlyFinish = date
			a.EarlyStart = cal.SubtractWorkingDays(date, a.Duration)
		}
	case models.FinishNoLaterThan:
		if a.EarlyFinish.After(date) {
			a.flagViolation(fmt.Sprintf("finish-no-later-than %s infeasible: earliest finish is %s",
				formatDay(date), formatDay(a.EarlyFinish)))
		}
	case models.MustStartOn:
		if a.EarlyStart.After(date) {
			a.flagViolation(fmt.Sprintf("must-start-on %s infeasible: earliest start is %s",
				formatDay(date), formatDay(a.EarlyStart)))
		}
		a.EarlyStart = date
		a.EarlyFinish = cal.AddWorkingDays(date, a.Duration)
	case models.MustFinishOn:
		if a.EarlyFinish.After(date) {
			a.flagViolation(fmt.Sprintf("must-finish-on %s infeasible: earliest finish is %s",
				formatDay(date), formatDay(a.EarlyFinish)))
		}
		a.EarlyFinish = date
		a.EarlyStart = cal.SubtractWorkingDays(date, a.Duration)
	}
}

// applyLateConstraint mirrors applyEarlyConstraint for the backward pass.
// The must-pin kinds fix late equal to early, forcing zero float by
// construction.
func applyLateConstraint(a *ScheduledActivity, cal *calendar.Calendar) {
	if a.Constraint == models.ConstraintNone || a.ConstraintDate == nil {
		return
	}
	date := calendar.DateOnly(*a.ConstraintDate)
	switch a.Constraint {
	case models.StartNoLaterThan:
		if a.LateStart.After(date) {
			a.LateStart = date
			a.LateFinish = cal.AddWorkingDays(date, a.Duration)
		}
	case models.FinishNoLaterThan:
		if a.LateFinish.After(date) {
			a.LateFinish = date
			a.LateStart = cal.SubtractWorkingDays(date, a.Duration)
		}
	case models.MustStartOn:
		a.LateStart = date
		a.LateFinish = cal.AddWorkingDays(date, a.Duration)
	case models.MustFinishOn:
		a.LateFinish = date
		a.LateStart = cal.SubtractWorkingDays(date, a.Duration)
	}
}

func (a *ScheduledActivity) flagViolation(msg string) {
	a.ConstraintViolated = true
	a.ViolationMessage = msg
}
