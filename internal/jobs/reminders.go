package jobs

import (
	"fmt"
	"time"

	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/scheduler"
)

// Well-known job ids for the default reminder set. Registering under a fixed
// id makes startup idempotent: re-running setup replaces rather than stacks.
const (
	JobIDDailyOverdue    = "daily_overdue_reminder"
	JobIDWeeklySummary   = "weekly_summary"
	JobIDBiWeeklyPending = "biweekly_pending_reminder"
)

// SetupDefaultReminders registers the standing reminder schedule on the
// registry: a daily overdue summary, a weekly stats summary, a pending
// summary every two weeks, and one-shot countdown reminders ahead of the
// payment deadline when one is configured.
func (jr *JobRunner) SetupDefaultReminders(reg *scheduler.Registry) error {
	h := jr.config.Reminders.Hour
	m := jr.config.Reminders.Minute

	if err := jr.AddDailyOverdueReminder(reg, h, m); err != nil {
		return err
	}

	weeklyDay, err := scheduler.ParseWeekday(jr.config.Reminders.WeeklySummaryDay)
	if err != nil {
		return err
	}
	if err := jr.AddWeeklySummary(reg, weeklyDay, h, m); err != nil {
		return err
	}

	pendingDay, err := scheduler.ParseWeekday(jr.config.Reminders.BiWeeklyPendingDay)
	if err != nil {
		return err
	}
	if err := jr.AddBiWeeklyPendingReminder(reg, pendingDay, h, m); err != nil {
		return err
	}

	if deadline, ok := jr.config.PaymentDeadlineTime(); ok {
		if err := jr.AddDeadlineReminders(reg, deadline, jr.config.Reminders.DeadlineOffsetsDays, h, m); err != nil {
			return err
		}
	}

	logger.Info("Default reminders registered", "jobs", len(reg.ListJobs()))
	return nil
}

// AddDailyOverdueReminder schedules the overdue summary every day at the
// given local time.
func (jr *JobRunner) AddDailyOverdueReminder(reg *scheduler.Registry, hour, minute int) error {
	trigger, err := scheduler.NewCronTrigger(nil, hour, minute)
	if err != nil {
		return err
	}
	return reg.AddJob(JobIDDailyOverdue, "Daily overdue dues reminder", trigger, jr.SendOverdueReminders)
}

// AddWeeklySummary schedules the chapter stats summary once a week.
func (jr *JobRunner) AddWeeklySummary(reg *scheduler.Registry, day time.Weekday, hour, minute int) error {
	trigger, err := scheduler.NewCronTrigger(&day, hour, minute)
	if err != nil {
		return err
	}
	return reg.AddJob(JobIDWeeklySummary, "Weekly chapter summary", trigger, jr.SendWeeklySummary)
}

// AddBiWeeklyPendingReminder schedules the pending summary every fourteen
// days, anchored at the next strictly future occurrence of the given weekday
// and time. Anchoring keeps the every-other-week grid stable across restarts
// that happen on the off week's same weekday.
func (jr *JobRunner) AddBiWeeklyPendingReminder(reg *scheduler.Registry, day time.Weekday, hour, minute int) error {
	first := nextWeekdayOccurrence(jr.now(), day, hour, minute)
	trigger, err := scheduler.NewIntervalTrigger(14*24*time.Hour, first)
	if err != nil {
		return err
	}
	return reg.AddJob(JobIDBiWeeklyPending, "Bi-weekly pending dues reminder", trigger, jr.SendPendingReminders)
}

// AddDeadlineReminders schedules one-shot countdown reminders at the given
// day offsets before the payment deadline, each firing at the given local
// time. Offsets whose fire time already passed are dropped by the registry.
func (jr *JobRunner) AddDeadlineReminders(reg *scheduler.Registry, deadline time.Time, offsetsDays []int, hour, minute int) error {
	for _, offset := range offsetsDays {
		fireDay := deadline.AddDate(0, 0, -offset)
		at := time.Date(fireDay.Year(), fireDay.Month(), fireDay.Day(), hour, minute, 0, 0, time.Local)

		trigger, err := scheduler.NewDateTrigger(at)
		if err != nil {
			return err
		}
		id := fmt.Sprintf("deadline_reminder_%d_days_before", offset)
		name := fmt.Sprintf("Payment deadline reminder (%d days before)", offset)
		if err := reg.AddJob(id, name, trigger, jr.SendDeadlineReminder); err != nil {
			return err
		}
	}
	return nil
}

// nextWeekdayOccurrence returns the first moment after now that falls on the
// given weekday at hour:minute local time. If now is that weekday but the
// time of day has passed, the result rolls to the following week.
func nextWeekdayOccurrence(now time.Time, day time.Weekday, hour, minute int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	for candidate.Weekday() != day || !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}
