// Package schedule implements the Critical Path Method engine: forward and
// backward passes over a typed, lagged dependency network, with calendar
// arithmetic, progress clipping against a data date, and scheduling
// constraints. Calculate is a pure function over an input snapshot; it
// holds no state between calls.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
)

// ErrCycle is returned when the relationship graph has no valid
// topological ordering.
var ErrCycle = errors.New("schedule: dependency cycle")

// Input is the immutable snapshot one Calculate call works on. The engine
// only reads it; annotated copies are returned in the Result.
type Input struct {
	Activities    []models.Activity
	Relationships []models.Relationship
	Calendars     map[string]*calendar.Calendar

	// ProjectStart seeds activities with no predecessors when no data
	// date is supplied.
	ProjectStart time.Time
	// DataDate is the as-of date remaining work is projected from.
	DataDate *time.Time
	// MustFinishBy imposes the project finish used by the backward pass
	// instead of the computed one.
	MustFinishBy *time.Time
	// Mode selects the out-of-sequence progress treatment. Empty means
	// retained logic.
	Mode models.ProgressMode
}

// ScheduledActivity is an activity annotated with computed dates. All
// computed fields are derived fresh on every Calculate call.
type ScheduledActivity struct {
	models.Activity

	EarlyStart  time.Time
	EarlyFinish time.Time
	LateStart   time.Time
	LateFinish  time.Time

	// TotalFloat and FreeFloat are working days on the activity calendar.
	TotalFloat int
	FreeFloat  int
	Critical   bool

	ConstraintViolated bool
	ViolationMessage   string
}

// Result is the annotated activity set plus derived project summaries.
type Result struct {
	// Activities preserves the input ordering.
	Activities []*ScheduledActivity
	// Order is the topological ordering the passes ran in.
	Order []string

	ProjectStart  time.Time
	ProjectFinish time.Time
	// ProjectDuration is working days between project start and finish on
	// the default calendar.
	ProjectDuration int

	byID map[string]*ScheduledActivity
}

// Activity returns the annotated activity with the given ID, or nil.
func (r *Result) Activity(id string) *ScheduledActivity {
	return r.byID[id]
}

// Critical returns the critical activities in topological order.
func (r *Result) Critical() []*ScheduledActivity {
	var out []*ScheduledActivity
	for _, id := range r.Order {
		if a := r.byID[id]; a.Critical {
			out = append(out, a)
		}
	}
	return out
}

// CriticalPath returns the IDs of the critical activities in topological
// order.
func (r *Result) CriticalPath() []string {
	var out []string
	for _, a := range r.Critical() {
		out = append(out, a.ID)
	}
	return out
}

// Violations returns the activities whose constraints were infeasible, in
// topological order.
func (r *Result) Violations() []*ScheduledActivity {
	var out []*ScheduledActivity
	for _, id := range r.Order {
		if a := r.byID[id]; a.ConstraintViolated {
			out = append(out, a)
		}
	}
	return out
}

// edge is a relationship resolved to activity indices.
type edge struct {
	pred, succ int
	typ        models.RelType
	lag        int
}

// network is the indexed working set for one Calculate call: activities in
// an arena slice, relationships as index pairs, adjacency both ways.
type network struct {
	acts  []*ScheduledActivity
	cals  []*calendar.Calendar
	index map[string]int
	preds [][]edge
	succs [][]edge
	order []int
}

// Calculate computes early/late dates, float, and criticality for every
// activity in the snapshot. It returns ErrCycle (wrapped) when the
// relationship graph is cyclic.
func Calculate(in Input) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	net := buildNetwork(in)
	if err := net.topoSort(); err != nil {
		return nil, err
	}
	forwardPass(net, in)
	backwardPass(net, in)
	computeFloat(net)
	return buildResult(net, in), nil
}

func validate(in Input) error {
	if len(in.Activities) == 0 {
		return fmt.Errorf("schedule: no activities")
	}
	if in.ProjectStart.IsZero() && in.DataDate == nil {
		return fmt.Errorf("schedule: project start or data date required")
	}
	if in.Mode != "" && !models.ValidModes[in.Mode] {
		return fmt.Errorf("schedule: unknown progress mode %q", in.Mode)
	}
	seen := make(map[string]bool, len(in.Activities))
	for _, a := range in.Activities {
		if a.ID == "" {
			return fmt.Errorf("schedule: activity with empty id")
		}
		if seen[a.ID] {
			return fmt.Errorf("schedule: duplicate activity id %s", a.ID)
		}
		seen[a.ID] = true
		if a.Duration < 0 {
			return fmt.Errorf("schedule: activity %s: negative duration %d", a.ID, a.Duration)
		}
		if a.Status != "" && !models.ValidStatuses[a.Status] {
			return fmt.Errorf("schedule: activity %s: unknown status %q", a.ID, a.Status)
		}
		if a.PercentComplete < 0 || a.PercentComplete > 100 {
			return fmt.Errorf("schedule: activity %s: percent complete %v out of range", a.ID, a.PercentComplete)
		}
		if a.Constraint != models.ConstraintNone {
			if !models.ValidConstraints[a.Constraint] {
				return fmt.Errorf("schedule: activity %s: unknown constraint %q", a.ID, a.Constraint)
			}
			if a.ConstraintDate == nil {
				return fmt.Errorf("schedule: activity %s: constraint %s without a date", a.ID, a.Constraint)
			}
		}
		if a.CalendarID != "" && a.CalendarID != calendar.DefaultID {
			cal, ok := in.Calendars[a.CalendarID]
			if !ok {
				return fmt.Errorf("schedule: activity %s: unknown calendar %q", a.ID, a.CalendarID)
			}
			if !cal.HasWorkingWeekday() {
				return fmt.Errorf("schedule: calendar %s has no working weekday", a.CalendarID)
			}
		}
	}
	for _, r := range in.Relationships {
		if r.Predecessor == r.Successor {
			return fmt.Errorf("schedule: relationship on %s references itself as both ends", r.Predecessor)
		}
		if r.Type != "" && !models.ValidRelTypes[r.Type] {
			return fmt.Errorf("schedule: relationship %s -> %s: unknown type %q", r.Predecessor, r.Successor, r.Type)
		}
	}
	return nil
}

// buildNetwork copies the snapshot into the indexed arena, resolving
// calendars and normalizing defaults. Relationships with a missing
// endpoint contribute no link, matching upstream tolerance for dangling
// references.
func buildNetwork(in Input) *network {
	n := len(in.Activities)
	net := &network{
		acts:  make([]*ScheduledActivity, n),
		cals:  make([]*calendar.Calendar, n),
		index: make(map[string]int, n),
		preds: make([][]edge, n),
		succs: make([][]edge, n),
	}
	def := resolveDefault(in.Calendars)
	for i, a := range in.Activities {
		if a.Status == "" {
			a.Status = models.StatusNotStarted
		}
		net.acts[i] = &ScheduledActivity{Activity: a}
		net.index[a.ID] = i
		if a.CalendarID == "" || a.CalendarID == calendar.DefaultID {
			net.cals[i] = def
		} else {
			net.cals[i] = in.Calendars[a.CalendarID]
		}
	}
	for _, r := range in.Relationships {
		pi, okP := net.index[r.Predecessor]
		si, okS := net.index[r.Successor]
		if !okP || !okS {
			continue
		}
		typ := r.Type
		if typ == "" {
			typ = models.FinishToStart
		}
		e := edge{pred: pi, succ: si, typ: typ, lag: r.Lag}
		net.preds[si] = append(net.preds[si], e)
		net.succs[pi] = append(net.succs[pi], e)
	}
	return net
}

// resolveDefault prefers a caller-supplied "default" calendar over the
// built-in five-day one.
func resolveDefault(cals map[string]*calendar.Calendar) *calendar.Calendar {
	if c, ok := cals[calendar.DefaultID]; ok && c.HasWorkingWeekday() {
		return c
	}
	return calendar.Default()
}

// startFloor is the earliest date any activity without predecessors may
// start: the data date when supplied, else the project start.
func startFloor(in Input) time.Time {
	if in.DataDate != nil {
		return calendar.DateOnly(*in.DataDate)
	}
	return calendar.DateOnly(in.ProjectStart)
}

func buildResult(net *network, in Input) *Result {
	res := &Result{
		Activities: net.acts,
		byID:       make(map[string]*ScheduledActivity, len(net.acts)),
	}
	for _, i := range net.order {
		res.Order = append(res.Order, net.acts[i].ID)
	}
	var start, finish time.Time
	for _, a := range net.acts {
		res.byID[a.ID] = a
		if start.IsZero() || a.EarlyStart.Before(start) {
			start = a.EarlyStart
		}
		if a.EarlyFinish.After(finish) {
			finish = a.EarlyFinish
		}
	}
	res.ProjectStart = start
	res.ProjectFinish = finish
	res.ProjectDuration = resolveDefault(in.Calendars).WorkingDaysBetween(start, finish)
	return res
}
