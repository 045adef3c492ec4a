package schedule

import (
	"testing"
	"time"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
)

func progressActivity(dur int, status models.Status, pct float64) *ScheduledActivity {
	return &ScheduledActivity{
		Activity: models.Activity{
			ID:              "T",
			Duration:        dur,
			Status:          status,
			PercentComplete: pct,
		},
	}
}

func TestRemainingDays(t *testing.T) {
	tests := []struct {
		name     string
		dur      int
		pct      float64
		explicit int
		want     int
	}{
		{"explicit remaining wins", 10, 50, 7, 7},
		{"derived from percent", 10, 50, 0, 5},
		{"partial days round up", 10, 33, 0, 7},
		{"untouched", 10, 0, 0, 10},
		{"finished", 10, 100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := progressActivity(tt.dur, models.StatusInProgress, tt.pct)
			a.RemainingDuration = tt.explicit
			if got := remainingDays(a); got != tt.want {
				t.Errorf("remainingDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRetainedLogic_ActualStartPins(t *testing.T) {
	cal := calendar.Default()
	actual := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	a := progressActivity(5, models.StatusInProgress, 0)
	a.ActualStart = &actual
	a.EarlyStart = time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	applyRetainedLogic(a, cal, nil)

	if !a.EarlyStart.Equal(actual) {
		t.Errorf("EarlyStart = %s, want actual start %s", formatDay(a.EarlyStart), formatDay(actual))
	}
	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !a.EarlyFinish.Equal(want) {
		t.Errorf("EarlyFinish = %s, want %s", formatDay(a.EarlyFinish), formatDay(want))
	}
}

func TestRetainedLogic_InProgressNeverFinishesBeforeDataDate(t *testing.T) {
	cal := calendar.Default()
	dd := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	// Calendar says the activity should already be done; the data date
	// projection pushes the finish out instead.
	a := progressActivity(5, models.StatusInProgress, 40)
	a.EarlyStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)

	applyRetainedLogic(a, cal, &dd)

	want := time.Date(2025, time.January, 23, 0, 0, 0, 0, time.UTC) // dd + 3 remaining
	if !a.EarlyFinish.Equal(want) {
		t.Errorf("EarlyFinish = %s, want %s", formatDay(a.EarlyFinish), formatDay(want))
	}
}

func TestRetainedLogic_LaterCalendarFinishKept(t *testing.T) {
	cal := calendar.Default()
	dd := time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)

	a := progressActivity(10, models.StatusInProgress, 80)
	a.EarlyStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	applyRetainedLogic(a, cal, &dd)

	// dd + 2 remaining = Jan 15, earlier than the calendar finish; the
	// later date governs.
	want := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	if !a.EarlyFinish.Equal(want) {
		t.Errorf("EarlyFinish = %s, want %s", formatDay(a.EarlyFinish), formatDay(want))
	}
}

func TestRetainedLogic_UnstartedClippedToDataDate(t *testing.T) {
	cal := calendar.Default()
	dd := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	a := progressActivity(5, models.StatusNotStarted, 0)
	a.EarlyStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)

	applyRetainedLogic(a, cal, &dd)

	if !a.EarlyStart.Equal(dd) {
		t.Errorf("EarlyStart = %s, want data date %s", formatDay(a.EarlyStart), formatDay(dd))
	}
	want := time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC)
	if !a.EarlyFinish.Equal(want) {
		t.Errorf("EarlyFinish = %s, want %s", formatDay(a.EarlyFinish), formatDay(want))
	}
}

func TestRetainedLogic_CompletedUsesActuals(t *testing.T) {
	cal := calendar.Default()
	dd := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	finish := time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)

	a := progressActivity(5, models.StatusCompleted, 100)
	a.ActualStart = &start
	a.ActualFinish = &finish
	a.EarlyStart = time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	applyRetainedLogic(a, cal, &dd)

	if !a.EarlyStart.Equal(start) || !a.EarlyFinish.Equal(finish) {
		t.Errorf("got %s..%s, want actuals %s..%s",
			formatDay(a.EarlyStart), formatDay(a.EarlyFinish),
			formatDay(start), formatDay(finish))
	}
}

func TestProgressOverride_RemainingWorkFromDataDate(t *testing.T) {
	cal := calendar.Default()
	dd := time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

	a := progressActivity(10, models.StatusInProgress, 80)
	a.ActualStart = &start
	// Network logic would hold the finish at Jan 20.
	a.EarlyStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	applyProgressOverride(a, cal, &dd)

	want := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !a.EarlyFinish.Equal(want) {
		t.Errorf("EarlyFinish = %s, want %s (remaining work rescheduled from data date)",
			formatDay(a.EarlyFinish), formatDay(want))
	}
	if !a.EarlyStart.Equal(start) {
		t.Errorf("EarlyStart = %s, want actual start kept", formatDay(a.EarlyStart))
	}
}

func TestProgressOverride_NoDataDateFallsBack(t *testing.T) {
	cal := calendar.Default()
	a := progressActivity(5, models.StatusNotStarted, 0)
	a.EarlyStart = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	a.EarlyFinish = time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)

	applyProgressOverride(a, cal, nil)

	if !a.EarlyFinish.Equal(time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EarlyFinish moved to %s without a data date", formatDay(a.EarlyFinish))
	}
}
