package schedule

import (
	"time"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
)

// backwardPass computes late dates in reverse topological order. Each
// outgoing relationship bounds how late this activity may run without
// delaying its successor; the minimum governs. Late-date constraints are
// re-applied since the pinning kinds fix both sides.
func backwardPass(net *network, in Input) {
	finish := projectFinish(net, in)
	for k := len(net.order) - 1; k >= 0; k-- {
		i := net.order[k]
		a := net.acts[i]
		cal := net.cals[i]

		lf := finish
		if len(net.succs[i]) > 0 {
			lf = time.Time{}
			for _, e := range net.succs[i] {
				cand := lateCandidate(net, e, a, cal)
				if lf.IsZero() || cand.Before(lf) {
					lf = cand
				}
			}
		}
		a.LateFinish = lf
		a.LateStart = cal.SubtractWorkingDays(lf, a.Duration)

		applyLateConstraint(a, cal)
	}
}

// projectFinish is the caller-imposed finish when supplied, else the
// latest early finish among activities with no successors.
func projectFinish(net *network, in Input) time.Time {
	if in.MustFinishBy != nil {
		return calendar.DateOnly(*in.MustFinishBy)
	}
	var finish time.Time
	for i, a := range net.acts {
		if len(net.succs[i]) == 0 && a.EarlyFinish.After(finish) {
			finish = a.EarlyFinish
		}
	}
	return finish
}

// lateCandidate evaluates one outgoing relationship to the late finish it
// allows the predecessor (a). FS and FF constrain the finish directly;
// SS and SF bound the late start, so the finish is derived by adding the
// duration back on.
func lateCandidate(net *network, e edge, a *ScheduledActivity, cal *calendar.Calendar) time.Time {
	s := net.acts[e.succ]
	switch e.typ {
	case models.StartToStart:
		ls := cal.SubtractWorkingDays(s.LateStart, e.lag)
		return cal.AddWorkingDays(ls, a.Duration)
	case models.FinishToFinish:
		return cal.SubtractWorkingDays(s.LateFinish, e.lag)
	case models.StartToFinish:
		ls := cal.SubtractWorkingDays(s.LateFinish, e.lag)
		return cal.AddWorkingDays(ls, a.Duration)
	default: // finish-to-start
		return cal.SubtractWorkingDays(s.LateStart, e.lag)
	}
}
