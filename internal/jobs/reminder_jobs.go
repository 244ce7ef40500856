package jobs

import (
	"context"
	"time"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/service"
)

// SendOverdueReminders posts a summary of all overdue members to the chapter
// channel. Statuses are recomputed from the stored facts at fire time, so a
// due date that lapsed since the last write is still picked up.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		unpaid := jr.collectUnpaid(domain.PaymentStatusOverdue)
		if len(unpaid) == 0 {
			logger.Info("No overdue members, skipping reminder")
			return
		}

		result := jr.gateway.SendBulkReminderSummary(context.Background(), unpaid, jr.config.Reminders.SummaryDisplayLimit)
		if !result.Success {
			logger.Error("Failed to send overdue reminder summary",
				"status_code", result.StatusCode,
				"message", result.Message)
			return
		}
		logger.Info("Overdue reminder summary sent", "members", len(unpaid))
	})
}

// SendPendingReminders posts a summary of members who still owe dues but are
// not yet overdue.
func (jr *JobRunner) SendPendingReminders() {
	jr.runWithRecovery("SendPendingReminders", func() {
		unpaid := jr.collectUnpaid(domain.PaymentStatusPending)
		if len(unpaid) == 0 {
			logger.Info("No pending members, skipping reminder")
			return
		}

		result := jr.gateway.SendBulkReminderSummary(context.Background(), unpaid, jr.config.Reminders.SummaryDisplayLimit)
		if !result.Success {
			logger.Error("Failed to send pending reminder summary",
				"status_code", result.StatusCode,
				"message", result.Message)
			return
		}
		logger.Info("Pending reminder summary sent", "members", len(unpaid))
	})
}

// SendWeeklySummary posts chapter-wide collection statistics. The numbers are
// aggregated fresh from the store at fire time, never cached between runs.
func (jr *JobRunner) SendWeeklySummary() {
	jr.runWithRecovery("SendWeeklySummary", func() {
		ctx := context.Background()

		stats, err := jr.stats.GetStats(ctx)
		if err != nil {
			logger.Error("Failed to aggregate chapter stats", "error", err)
			return
		}

		result := jr.gateway.SendWeeklySummary(ctx, stats)
		if !result.Success {
			logger.Error("Failed to send weekly summary",
				"status_code", result.StatusCode,
				"message", result.Message)
			return
		}
		logger.Info("Weekly summary sent",
			"total_members", stats.TotalMembers,
			"collection_rate", stats.CollectionRate)
	})
}

// SendDeadlineReminder posts a countdown notice ahead of the configured
// payment deadline. Days remaining are computed at fire time, and a deadline
// already in the past makes the job a logged no-op.
func (jr *JobRunner) SendDeadlineReminder() {
	jr.runWithRecovery("SendDeadlineReminder", func() {
		deadline, ok := jr.config.PaymentDeadlineTime()
		if !ok {
			logger.Info("No payment deadline configured, skipping deadline reminder")
			return
		}

		now := jr.now()
		days := daysUntil(now, deadline)
		if days < 0 {
			logger.Info("Payment deadline already passed, skipping deadline reminder", "deadline", deadline)
			return
		}

		ctx := context.Background()
		members, err := jr.members.List(ctx)
		if err != nil {
			logger.Error("Failed to list members for deadline reminder", "error", err)
			return
		}

		var unpaidCount int32
		var outstandingCents int64
		for i := range members {
			m := &members[i]
			if m.OutstandingCents() <= 0 {
				continue
			}
			unpaidCount++
			outstandingCents += m.OutstandingCents()
		}
		if unpaidCount == 0 {
			logger.Info("All members paid, skipping deadline reminder")
			return
		}

		result := jr.gateway.SendDeadlineReminder(ctx, days, unpaidCount, outstandingCents)
		if !result.Success {
			logger.Error("Failed to send deadline reminder",
				"status_code", result.StatusCode,
				"message", result.Message)
			return
		}
		logger.Info("Deadline reminder sent", "days_until_deadline", days, "unpaid_members", unpaidCount)
	})
}

// collectUnpaid returns the members whose recomputed status matches want and
// who still owe money. Members with nothing outstanding never appear in a
// reminder, whatever their stored status says.
func (jr *JobRunner) collectUnpaid(want domain.PaymentStatus) []service.UnpaidMember {
	ctx := context.Background()

	members, err := jr.members.List(ctx)
	if err != nil {
		logger.Error("Failed to list members", "error", err)
		return nil
	}

	now := jr.now()
	var unpaid []service.UnpaidMember
	for i := range members {
		m := &members[i]
		status := domain.ResolveStatusOr(m.PaymentStatus, m.AmountPaidCents, m.DuesAmountCents, m.DueDate, now)
		if status != want || m.OutstandingCents() <= 0 {
			continue
		}
		unpaid = append(unpaid, service.UnpaidMember{
			Name:           m.Name,
			Role:           string(m.Role),
			AmountDueCents: m.OutstandingCents(),
			Status:         status,
		})
	}
	return unpaid
}

// daysUntil counts whole calendar days from now to the deadline date,
// ignoring time of day. The deadline day itself counts as zero.
func daysUntil(now, deadline time.Time) int {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deadlineDate := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, deadline.Location())
	return int(deadlineDate.Sub(nowDate).Hours() / 24)
}
