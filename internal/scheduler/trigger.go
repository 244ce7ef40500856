package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidTrigger is returned when a trigger spec fails validation at
// configuration time. Runtime firing never produces it.
var ErrInvalidTrigger = errors.New("invalid trigger")

type TriggerKind string

const (
	// TriggerKindCron fires at a fixed time of day, every day or on one
	// weekday, in server-local time.
	TriggerKindCron TriggerKind = "cron"
	// TriggerKindInterval fires every fixed period anchored at an explicit
	// first-fire time computed by the caller.
	TriggerKindInterval TriggerKind = "interval"
	// TriggerKindDate fires exactly once at a point in time. A date already
	// in the past at registration is dropped silently, never fired late.
	TriggerKindDate TriggerKind = "date"
)

// Trigger is the closed set of supported firing rules. Free-text specs from
// requests are mapped onto one of these at the API boundary; unknown shapes
// are rejected there as ErrInvalidTrigger instead of being passed through.
type Trigger struct {
	Kind TriggerKind

	// Cron fields
	Weekday *time.Weekday // nil means every day
	Hour    int
	Minute  int

	// Interval fields
	Every time.Duration
	Start time.Time

	// Date field
	At time.Time
}

// NewCronTrigger builds a daily or weekly time-of-day trigger.
func NewCronTrigger(weekday *time.Weekday, hour, minute int) (Trigger, error) {
	t := Trigger{Kind: TriggerKindCron, Weekday: weekday, Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return Trigger{}, err
	}
	return t, nil
}

// NewIntervalTrigger builds a fixed-period trigger anchored at start.
func NewIntervalTrigger(every time.Duration, start time.Time) (Trigger, error) {
	t := Trigger{Kind: TriggerKindInterval, Every: every, Start: start}
	if err := t.Validate(); err != nil {
		return Trigger{}, err
	}
	return t, nil
}

// NewDateTrigger builds a one-shot trigger.
func NewDateTrigger(at time.Time) (Trigger, error) {
	t := Trigger{Kind: TriggerKindDate, At: at}
	if err := t.Validate(); err != nil {
		return Trigger{}, err
	}
	return t, nil
}

// Validate checks the trigger spec and returns ErrInvalidTrigger on any
// malformed field.
func (t Trigger) Validate() error {
	switch t.Kind {
	case TriggerKindCron:
		if t.Hour < 0 || t.Hour > 23 {
			return fmt.Errorf("%w: hour %d out of range", ErrInvalidTrigger, t.Hour)
		}
		if t.Minute < 0 || t.Minute > 59 {
			return fmt.Errorf("%w: minute %d out of range", ErrInvalidTrigger, t.Minute)
		}
		if t.Weekday != nil && (*t.Weekday < time.Sunday || *t.Weekday > time.Saturday) {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidTrigger, *t.Weekday)
		}
	case TriggerKindInterval:
		if t.Every <= 0 {
			return fmt.Errorf("%w: interval period must be positive", ErrInvalidTrigger)
		}
		if t.Start.IsZero() {
			return fmt.Errorf("%w: interval start time is required", ErrInvalidTrigger)
		}
	case TriggerKindDate:
		if t.At.IsZero() {
			return fmt.Errorf("%w: fire date is required", ErrInvalidTrigger)
		}
	default:
		return fmt.Errorf("%w: unknown trigger kind %q", ErrInvalidTrigger, t.Kind)
	}
	return nil
}

// schedule converts the trigger into a cron.Schedule for the runtime.
func (t Trigger) schedule() (cron.Schedule, error) {
	switch t.Kind {
	case TriggerKindCron:
		dow := "*"
		if t.Weekday != nil {
			dow = fmt.Sprintf("%d", int(*t.Weekday))
		}
		spec := fmt.Sprintf("%d %d * * %s", t.Minute, t.Hour, dow)
		sched, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTrigger, err)
		}
		return sched, nil
	case TriggerKindInterval:
		return intervalSchedule{every: t.Every, start: t.Start}, nil
	case TriggerKindDate:
		return dateSchedule{at: t.At}, nil
	}
	return nil, fmt.Errorf("%w: unknown trigger kind %q", ErrInvalidTrigger, t.Kind)
}

// intervalSchedule fires every `every` starting at `start`. Occurrences are
// anchored to the start time, so a slow job body never drifts the grid.
type intervalSchedule struct {
	every time.Duration
	start time.Time
}

func (s intervalSchedule) Next(t time.Time) time.Time {
	if t.Before(s.start) {
		return s.start
	}
	n := t.Sub(s.start)/s.every + 1
	return s.start.Add(n * s.every)
}

// dateSchedule fires once at `at` and never again.
type dateSchedule struct {
	at time.Time
}

func (s dateSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// ParseWeekday maps the short weekday names accepted by the scheduling API
// onto time.Weekday. Unknown names are an ErrInvalidTrigger.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sun":
		return time.Sunday, nil
	case "mon":
		return time.Monday, nil
	case "tue":
		return time.Tuesday, nil
	case "wed":
		return time.Wednesday, nil
	case "thu":
		return time.Thursday, nil
	case "fri":
		return time.Friday, nil
	case "sat":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidTrigger, s)
}
