package schedule

import (
	"time"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
)

// forwardPass computes early dates in topological order. For each activity
// the driving relationship rule applies: the incoming relationship yielding
// the latest dependent date governs the early start. Raw dates are then
// adjusted for progress and for early-date constraints.
func forwardPass(net *network, in Input) {
	floor := startFloor(in)
	for _, i := range net.order {
		a := net.acts[i]
		cal := net.cals[i]

		es := floor
		for _, e := range net.preds[i] {
			if cand := earlyCandidate(net, e, a, cal); cand.After(es) {
				es = cand
			}
		}
		a.EarlyStart = es
		a.EarlyFinish = cal.AddWorkingDays(es, a.Duration)

		applyProgress(a, cal, in)
		applyEarlyConstraint(a, cal)
	}
}

// earlyCandidate evaluates one incoming relationship to the early start it
// implies for the successor. Lag walks on the predecessor's calendar since
// it offsets the predecessor's driving date. FF and SF constrain the
// successor's finish, so the start is derived by backing off its duration.
func earlyCandidate(net *network, e edge, a *ScheduledActivity, cal *calendar.Calendar) time.Time {
	p := net.acts[e.pred]
	pcal := net.cals[e.pred]
	switch e.typ {
	case models.StartToStart:
		return pcal.AddWorkingDays(p.EarlyStart, e.lag)
	case models.FinishToFinish:
		finish := pcal.AddWorkingDays(p.EarlyFinish, e.lag)
		return cal.SubtractWorkingDays(finish, a.Duration)
	case models.StartToFinish:
		finish := pcal.AddWorkingDays(p.EarlyStart, e.lag)
		return cal.SubtractWorkingDays(finish, a.Duration)
	default: // finish-to-start
		return pcal.AddWorkingDays(p.EarlyFinish, e.lag)
	}
}
