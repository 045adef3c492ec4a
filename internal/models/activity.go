// Package models defines the domain records the scheduling engine consumes:
// activities, typed relationships, and the enums describing status,
// constraints, and progress handling.
package models

import "time"

// Status describes how far along an activity is.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ValidStatuses enumerates every known activity status.
var ValidStatuses = map[Status]bool{
	StatusNotStarted: true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// ConstraintType identifies one of the six scheduling constraints.
type ConstraintType string

const (
	ConstraintNone      ConstraintType = ""
	StartNoEarlierThan  ConstraintType = "start_no_earlier_than"
	StartNoLaterThan    ConstraintType = "start_no_later_than"
	FinishNoEarlierThan ConstraintType = "finish_no_earlier_than"
	FinishNoLaterThan   ConstraintType = "finish_no_later_than"
	MustStartOn         ConstraintType = "must_start_on"
	MustFinishOn        ConstraintType = "must_finish_on"
)

// ValidConstraints enumerates every known constraint kind. ConstraintNone
// is deliberately absent: an empty constraint means "no constraint" and is
// checked separately.
var ValidConstraints = map[ConstraintType]bool{
	StartNoEarlierThan:  true,
	StartNoLaterThan:    true,
	FinishNoEarlierThan: true,
	FinishNoLaterThan:   true,
	MustStartOn:         true,
	MustFinishOn:        true,
}

// ProgressMode selects how out-of-sequence progress is treated against
// planned logic.
type ProgressMode string

const (
	RetainedLogic    ProgressMode = "retained_logic"
	ProgressOverride ProgressMode = "progress_override"
)

// ValidModes enumerates every known progress mode.
var ValidModes = map[ProgressMode]bool{
	RetainedLogic:    true,
	ProgressOverride: true,
}

// Activity is one unit of work on the project schedule. Duration and
// RemainingDuration are working days on the activity's calendar.
// RemainingDuration zero means "derive from percent complete".
type Activity struct {
	ID                string         `yaml:"id"`
	Name              string         `yaml:"name,omitempty"`
	Duration          int            `yaml:"duration"`
	RemainingDuration int            `yaml:"remaining_duration,omitempty"`
	CalendarID        string         `yaml:"calendar,omitempty"`
	Status            Status         `yaml:"status,omitempty"`
	PercentComplete   float64        `yaml:"percent_complete,omitempty"`
	ActualStart       *time.Time     `yaml:"actual_start,omitempty"`
	ActualFinish      *time.Time     `yaml:"actual_finish,omitempty"`
	Constraint        ConstraintType `yaml:"constraint,omitempty"`
	ConstraintDate    *time.Time     `yaml:"constraint_date,omitempty"`
}

// Started reports whether the activity has recorded any actual progress.
func (a Activity) Started() bool {
	return a.Status == StatusInProgress || a.Status == StatusCompleted || a.ActualStart != nil
}
