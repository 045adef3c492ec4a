// Package project provides YAML-based loading of project snapshot files:
// activities, relationships, calendars, and scheduling options. A loaded
// snapshot converts into the immutable input one engine run works on.
package project

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/strutline/girder/internal/calendar"
	"github.com/strutline/girder/internal/models"
	"github.com/strutline/girder/internal/schedule"
)

// Project is the top-level snapshot, loaded from a project YAML file.
type Project struct {
	Name          string                `yaml:"name"`
	ProjectStart  time.Time             `yaml:"project_start"`
	DataDate      *time.Time            `yaml:"data_date,omitempty"`
	MustFinishBy  *time.Time            `yaml:"must_finish_by,omitempty"`
	ProgressMode  models.ProgressMode   `yaml:"progress_mode,omitempty"`
	Calendars     []CalendarSpec        `yaml:"calendars,omitempty"`
	Activities    []models.Activity     `yaml:"activities"`
	Relationships []models.Relationship `yaml:"relationships,omitempty"`
}

// CalendarSpec describes a working calendar in snapshot form. WorkingDays
// holds weekday names ("mon" .. "sun", or full names).
type CalendarSpec struct {
	ID          string               `yaml:"id"`
	Name        string               `yaml:"name,omitempty"`
	WorkingDays []string             `yaml:"working_days,omitempty"`
	HoursPerDay float64              `yaml:"hours_per_day,omitempty"`
	Exceptions  []calendar.Exception `yaml:"exceptions,omitempty"`
}

// Load reads a YAML snapshot file from path and returns a validated Project.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Project.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("project: parse: %w", err)
	}
	p.applyDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// applyDefaults fills in derived and default values.
func (p *Project) applyDefaults() {
	if p.ProgressMode == "" {
		p.ProgressMode = models.RetainedLogic
	}
	for i := range p.Activities {
		if p.Activities[i].Status == "" {
			p.Activities[i].Status = models.StatusNotStarted
		}
	}
	for i := range p.Relationships {
		if p.Relationships[i].Type == "" {
			p.Relationships[i].Type = models.FinishToStart
		}
	}
	for i := range p.Calendars {
		if len(p.Calendars[i].WorkingDays) == 0 {
			p.Calendars[i].WorkingDays = []string{"mon", "tue", "wed", "thu", "fri"}
		}
		if p.Calendars[i].HoursPerDay == 0 {
			p.Calendars[i].HoursPerDay = 8
		}
	}
}

// validate checks that all required fields are present and consistent.
func (p *Project) validate() error {
	var errs []string
	if p.ProjectStart.IsZero() && p.DataDate == nil {
		errs = append(errs, "project_start (or data_date) is required")
	}
	if len(p.Activities) == 0 {
		errs = append(errs, "at least one activity is required")
	}
	if !models.ValidModes[p.ProgressMode] {
		errs = append(errs, fmt.Sprintf("unknown progress_mode %q", p.ProgressMode))
	}

	calIDs := make(map[string]bool, len(p.Calendars))
	for i, c := range p.Calendars {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("calendars[%d].id is required", i))
			continue
		}
		if calIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate calendar id %s", c.ID))
		}
		calIDs[c.ID] = true
		for _, wd := range c.WorkingDays {
			if _, err := parseWeekday(wd); err != nil {
				errs = append(errs, fmt.Sprintf("calendar %s: %v", c.ID, err))
			}
		}
	}

	actIDs := make(map[string]bool, len(p.Activities))
	for i, a := range p.Activities {
		if a.ID == "" {
			errs = append(errs, fmt.Sprintf("activities[%d].id is required", i))
			continue
		}
		if actIDs[a.ID] {
			errs = append(errs, fmt.Sprintf("duplicate activity id %s", a.ID))
		}
		actIDs[a.ID] = true
		if a.Duration < 0 {
			errs = append(errs, fmt.Sprintf("activity %s: duration must be >= 0", a.ID))
		}
		if !models.ValidStatuses[a.Status] {
			errs = append(errs, fmt.Sprintf("activity %s: unknown status %q", a.ID, a.Status))
		}
		if a.PercentComplete < 0 || a.PercentComplete > 100 {
			errs = append(errs, fmt.Sprintf("activity %s: percent_complete out of range", a.ID))
		}
		if a.Constraint != models.ConstraintNone {
			if !models.ValidConstraints[a.Constraint] {
				errs = append(errs, fmt.Sprintf("activity %s: unknown constraint %q", a.ID, a.Constraint))
			}
			if a.ConstraintDate == nil {
				errs = append(errs, fmt.Sprintf("activity %s: constraint_date is required with %s", a.ID, a.Constraint))
			}
		}
		if a.CalendarID != "" && a.CalendarID != calendar.DefaultID && !calIDs[a.CalendarID] {
			errs = append(errs, fmt.Sprintf("activity %s: unknown calendar %q", a.ID, a.CalendarID))
		}
	}

	for i, r := range p.Relationships {
		if r.Predecessor == "" || r.Successor == "" {
			errs = append(errs, fmt.Sprintf("relationships[%d]: predecessor and successor are required", i))
			continue
		}
		if r.Predecessor == r.Successor {
			errs = append(errs, fmt.Sprintf("relationship on %s references itself", r.Predecessor))
		}
		if !models.ValidRelTypes[r.Type] {
			errs = append(errs, fmt.Sprintf("relationship %s -> %s: unknown type %q", r.Predecessor, r.Successor, r.Type))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("project: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DanglingReferences lists relationship endpoints that name no activity.
// The engine tolerates them silently; callers surface them as warnings.
func (p *Project) DanglingReferences() []string {
	known := make(map[string]bool, len(p.Activities))
	for _, a := range p.Activities {
		known[a.ID] = true
	}
	var out []string
	for _, r := range p.Relationships {
		if !known[r.Predecessor] {
			out = append(out, r.Predecessor)
		}
		if !known[r.Successor] {
			out = append(out, r.Successor)
		}
	}
	return out
}

// Input converts the snapshot into the engine's input form.
func (p *Project) Input() (schedule.Input, error) {
	cals := make(map[string]*calendar.Calendar, len(p.Calendars))
	for _, spec := range p.Calendars {
		cal, err := spec.build()
		if err != nil {
			return schedule.Input{}, err
		}
		cals[cal.ID] = cal
	}
	return schedule.Input{
		Activities:    p.Activities,
		Relationships: p.Relationships,
		Calendars:     cals,
		ProjectStart:  p.ProjectStart,
		DataDate:      p.DataDate,
		MustFinishBy:  p.MustFinishBy,
		Mode:          p.ProgressMode,
	}, nil
}

func (s CalendarSpec) build() (*calendar.Calendar, error) {
	cal := &calendar.Calendar{
		ID:          s.ID,
		Name:        s.Name,
		HoursPerDay: s.HoursPerDay,
		Exceptions:  s.Exceptions,
	}
	for _, wd := range s.WorkingDays {
		day, err := parseWeekday(wd)
		if err != nil {
			return nil, fmt.Errorf("project: calendar %s: %w", s.ID, err)
		}
		cal.Weekdays[day] = true
	}
	return cal, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func parseWeekday(name string) (time.Weekday, error) {
	if day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return day, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
