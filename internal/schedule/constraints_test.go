package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
)

func testActivity(dur int, kind models.ConstraintType, date time.Time) *ScheduledActivity {
	return &ScheduledActivity{
		Activity: models.Activity{
			ID:             "T",
			Duration:       dur,
			Constraint:     kind,
			ConstraintDate: &date,
		},
	}
}

func TestApplyEarlyConstraint(t *testing.T) {
	cal := calendar.Default()
	jan6 := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	jan13 := time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
	jan20 := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		kind       models.ConstraintType
		date       time.Time
		wantES     time.Time
		wantEF     time.Time
		wantViol   bool
		msgMention string
	}{
		{
			name: "SNET pushes a too-early start later",
			kind: models.StartNoEarlierThan, date: jan13,
			wantES: jan13, wantEF: jan20,
		},
		{
			name: "SNET leaves a later start alone",
			kind: models.StartNoEarlierThan, date: jan6.AddDate(0, 0, -7),
			wantES: jan6, wantEF: jan13,
		},
		{
			name: "FNET pushes a too-early finish later",
			kind: models.FinishNoEarlierThan, date: jan20,
			wantES: jan13, wantEF: jan20,
		},
		{
			name: "FNLT flags but does not move the early finish",
			kind: models.FinishNoLaterThan, date: jan10,
			wantES: jan6, wantEF: jan13,
			wantViol: true, msgMention: "finish-no-later-than",
		},
		{
			name: "MSO pins the start exactly",
			kind: models.MustStartOn, date: jan13,
			wantES: jan13, wantEF: jan20,
		},
		{
			name: "MFO pin at the unconstrained finish is clean",
			kind: models.MustFinishOn, date: jan13,
			wantES: jan6, wantEF: jan13,
		},
		{
			name: "MFO pin before the unconstrained finish flags",
			kind: models.MustFinishOn, date: jan10,
			wantES: jan6.AddDate(0, 0, -3), wantEF: jan10, // Jan 3
			wantViol: true, msgMention: "must-finish-on",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testActivity(5, tt.kind, tt.date)
			a.EarlyStart = jan6
			a.EarlyFinish = jan13
			applyEarlyConstraint(a, cal)

			if !a.EarlyStart.Equal(tt.wantES) {
				t.Errorf("EarlyStart = %s, want %s", formatDay(a.EarlyStart), formatDay(tt.wantES))
			}
			if !a.EarlyFinish.Equal(tt.wantEF) {
				t.Errorf("EarlyFinish = %s, want %s", formatDay(a.EarlyFinish), formatDay(tt.wantEF))
			}
			if a.ConstraintViolated != tt.wantViol {
				t.Errorf("ConstraintViolated = %v, want %v", a.ConstraintViolated, tt.wantViol)
			}
			if tt.msgMention != "" && !strings.Contains(a.ViolationMessage, tt.msgMention) {
				t.Errorf("ViolationMessage = %q, want mention of %q", a.ViolationMessage, tt.msgMention)
			}
		})
	}
}

func TestApplyLateConstraint(t *testing.T) {
	cal := calendar.Default()
	jan6 := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	jan13 := time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
	jan20 := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	jan27 := time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		kind   models.ConstraintType
		date   time.Time
		wantLS time.Time
		wantLF time.Time
	}{
		{
			name: "SNLT pulls a too-late start earlier",
			kind: models.StartNoLaterThan, date: jan13,
			wantLS: jan13, wantLF: jan20,
		},
		{
			name: "SNLT leaves an earlier start alone",
			kind: models.StartNoLaterThan, date: jan27,
			wantLS: jan20, wantLF: jan27,
		},
		{
			name: "FNLT pulls a too-late finish earlier",
			kind: models.FinishNoLaterThan, date: jan13,
			wantLS: jan6, wantLF: jan13,
		},
		{
			name: "MSO pins late start",
			kind: models.MustStartOn, date: jan10,
			wantLS: jan10, wantLF: time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "MFO pins late finish",
			kind: models.MustFinishOn, date: jan13,
			wantLS: jan6, wantLF: jan13,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testActivity(5, tt.kind, tt.date)
			a.LateStart = jan20
			a.LateFinish = jan27
			applyLateConstraint(a, cal)

			if !a.LateStart.Equal(tt.wantLS) {
				t.Errorf("LateStart = %s, want %s", formatDay(a.LateStart), formatDay(tt.wantLS))
			}
			if !a.LateFinish.Equal(tt.wantLF) {
				t.Errorf("LateFinish = %s, want %s", formatDay(a.LateFinish), formatDay(tt.wantLF))
			}
		})
	}
}

func TestConstraintWithoutDateIsInert(t *testing.T) {
	cal := calendar.Default()
	a := &ScheduledActivity{Activity: models.Activity{ID: "T", Duration: 5}}
	a.EarlyStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)

	applyEarlyConstraint(a, cal)
	applyLateConstraint(a, cal)

	if a.ConstraintViolated {
		t.Error("activity without a constraint must not be flagged")
	}
}
