package schedule

import (
	"math"
	"time"

	"github.com/strutline/girder/internal/models"
)

// computeFloat derives total float, free float, and criticality from the
// two passes. Total float is the working days an activity can slip without
// moving the project finish; zero or negative float marks the critical
// path.
func computeFloat(net *network) {
	for _, i := range net.order {
		a := net.acts[i]
		cal := net.cals[i]
		a.TotalFloat = cal.WorkingDaysBetween(a.EarlyStart, a.LateStart)
		a.Critical = a.TotalFloat <= 0
		a.FreeFloat = freeFloat(net, i)
	}
}

// freeFloat is the smallest slack this activity has against any immediate
// successor, measured from the dependent date each relationship drives,
// floored at zero. Without successors it defaults to the total float.
func freeFloat(net *network, i int) int {
	a := net.acts[i]
	cal := net.cals[i]
	if len(net.succs[i]) == 0 {
		return a.TotalFloat
	}
	min := math.MaxInt
	for _, e := range net.succs[i] {
		s := net.acts[e.succ]
		var driving, target time.Time
		switch e.typ {
		case models.StartToStart:
			driving, target = cal.AddWorkingDays(a.EarlyStart, e.lag), s.EarlyStart
		case models.FinishToFinish:
			driving, target = cal.AddWorkingDays(a.EarlyFinish, e.lag), s.EarlyFinish
		case models.StartToFinish:
			driving, target = cal.AddWorkingDays(a.EarlyStart, e.lag), s.EarlyFinish
		default: // finish-to-start
			driving, target = cal.AddWorkingDays(a.EarlyFinish, e.lag), s.EarlyStart
		}
		if slack := cal.WorkingDaysBetween(driving, target); slack < min {
			min = slack
		}
	}
	if min < 0 {
		min = 0
	}
	return min
}
