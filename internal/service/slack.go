package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/logger"
)

// Block is one Slack Block Kit element.
type Block map[string]any

type slackGateway struct {
	webhookURL string
	client     *http.Client
	now        func() time.Time
}

// NewSlackGateway creates the webhook-backed notification gateway. The
// timeout bounds every delivery attempt; a slow Slack never stalls a
// reminder job for more than that.
func NewSlackGateway(webhookURL string, timeout time.Duration) NotificationGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &slackGateway{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Send posts a message to the webhook. All failure modes collapse into
// Success=false; the caller only ever logs the outcome.
func (s *slackGateway) Send(ctx context.Context, text string, blocks []Block) SendResult {
	payload := map[string]any{"text": text}
	if len(blocks) > 0 {
		payload["blocks"] = blocks
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SendResult{Success: false, StatusCode: http.StatusInternalServerError, Message: err.Error()}
	}

	logger.ExternalServiceCall("slack", "send")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return SendResult{Success: false, StatusCode: http.StatusInternalServerError, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("slack", "send", err)
		return SendResult{Success: false, StatusCode: http.StatusRequestTimeout, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.ExternalServiceResult("slack", "send", fmt.Errorf("status %d", resp.StatusCode))
		return SendResult{
			Success:    false,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Failed with status %d", resp.StatusCode),
		}
	}

	logger.ExternalServiceResult("slack", "send", nil)
	return SendResult{Success: true, StatusCode: resp.StatusCode, Message: "Message sent successfully"}
}

func (s *slackGateway) SendIndividualReminder(ctx context.Context, m *domain.Member) SendResult {
	urgency := "⚠️ REMINDER"
	emoji := "💰"
	if m.PaymentStatus == domain.PaymentStatusOverdue {
		urgency = "🔴 OVERDUE"
		emoji = "🚨"
	}

	fields := []Block{
		mrkdwn(fmt.Sprintf("*Member:*\n%s", m.Name)),
		mrkdwn(fmt.Sprintf("*Email:*\n%s", m.Email)),
		mrkdwn(fmt.Sprintf("*Amount Due:*\n%s", formatCents(m.OutstandingCents()))),
		mrkdwn(fmt.Sprintf("*Status:*\n%s", m.PaymentStatus)),
	}
	if m.DueDate != nil {
		fields = append(fields, mrkdwn(fmt.Sprintf("*Due Date:*\n%s", m.DueDate.Format("January 2, 2006"))))
	}

	blocks := []Block{
		header(fmt.Sprintf("%s %s: Dues Payment Needed", emoji, urgency)),
		{"type": "section", "fields": fields},
		{"type": "divider"},
		s.sentContext(),
	}

	text := fmt.Sprintf("%s: %s has %s in dues %s",
		urgency, m.Name, formatCents(m.OutstandingCents()), strings.ToLower(string(m.PaymentStatus)))
	return s.Send(ctx, text, blocks)
}

func (s *slackGateway) SendBulkReminderSummary(ctx context.Context, unpaid []UnpaidMember, displayLimit int) SendResult {
	if len(unpaid) == 0 {
		return SendResult{Success: false, Message: "No unpaid members to notify"}
	}
	if displayLimit <= 0 {
		displayLimit = 20
	}

	var totalOutstanding int64
	overdueCount := 0
	for _, m := range unpaid {
		totalOutstanding += m.AmountDueCents
		if m.Status == domain.PaymentStatusOverdue {
			overdueCount++
		}
	}
	pendingCount := len(unpaid) - overdueCount

	lines := make([]string, 0, displayLimit+1)
	for i, m := range unpaid {
		if i >= displayLimit {
			break
		}
		role := m.Role
		if role == "" {
			role = "N/A"
		}
		lines = append(lines, fmt.Sprintf("• *%s* (%s): %s - _%s_", m.Name, role, formatCents(m.AmountDueCents), m.Status))
	}
	if len(unpaid) > displayLimit {
		lines = append(lines, fmt.Sprintf("_...and %d more members_", len(unpaid)-displayLimit))
	}

	blocks := []Block{
		header("📊 Bulk Dues Payment Reminder"),
		section(fmt.Sprintf("*Summary:* %d members have outstanding dues totaling *%s*\n\n🔴 Overdue: %d members\n⚠️ Pending: %d members",
			len(unpaid), formatCents(totalOutstanding), overdueCount, pendingCount)),
		{"type": "divider"},
		section(fmt.Sprintf("*Members with Unpaid Dues:*\n%s", strings.Join(lines, "\n"))),
		s.sentContext(),
	}

	text := fmt.Sprintf("Bulk Reminder: %d members owe %s", len(unpaid), formatCents(totalOutstanding))
	return s.Send(ctx, text, blocks)
}

func (s *slackGateway) SendPaymentConfirmation(ctx context.Context, memberName string, amountCents int64, method, transactionID string) SendResult {
	fields := []Block{
		mrkdwn(fmt.Sprintf("*Member:*\n%s", memberName)),
		mrkdwn(fmt.Sprintf("*Amount:*\n%s", formatCents(amountCents))),
		mrkdwn(fmt.Sprintf("*Method:*\n%s", method)),
	}
	if transactionID != "" {
		shown := transactionID
		if len(shown) > 20 {
			shown = shown[:20] + "..."
		}
		fields = append(fields, mrkdwn(fmt.Sprintf("*Transaction ID:*\n`%s`", shown)))
	}

	blocks := []Block{
		header("✅ Payment Received!"),
		{"type": "section", "fields": fields},
		s.sentContext(),
	}

	text := fmt.Sprintf("✅ Payment received: %s paid %s via %s", memberName, formatCents(amountCents), method)
	return s.Send(ctx, text, blocks)
}

func (s *slackGateway) SendStatusUpdate(ctx context.Context, memberName string, oldStatus, newStatus domain.PaymentStatus, updatedBy string) SendResult {
	blocks := []Block{
		section(fmt.Sprintf("🔄 *Status Update*\n\n*Member:* %s\n*Status Changed:* %s %s → %s %s\n*Updated by:* %s",
			memberName, statusEmoji(oldStatus), oldStatus, statusEmoji(newStatus), newStatus, updatedBy)),
		s.sentContext(),
	}
	text := fmt.Sprintf("Status Update: %s - %s → %s", memberName, oldStatus, newStatus)
	return s.Send(ctx, text, blocks)
}

func (s *slackGateway) SendWeeklySummary(ctx context.Context, stats *domain.ChapterStats) SendResult {
	blocks := []Block{
		header("📈 Weekly Financial Summary"),
		{"type": "section", "fields": []Block{
			mrkdwn(fmt.Sprintf("*Total Members:*\n%d", stats.TotalMembers)),
			mrkdwn(fmt.Sprintf("*Paid Members:*\n%d ✅", stats.PaidMembers)),
			mrkdwn(fmt.Sprintf("*Total Collected:*\n%s", formatCents(stats.TotalCollectedCents))),
			mrkdwn(fmt.Sprintf("*Outstanding:*\n%s", formatCents(stats.OutstandingCents))),
		}},
		{"type": "divider"},
		section(fmt.Sprintf("*Collection Rate:* %.1f%%", stats.CollectionRate)),
		contextBlock(fmt.Sprintf("Week ending %s", s.now().Format("January 2, 2006"))),
	}

	text := fmt.Sprintf("Weekly Summary: %s collected, %s outstanding",
		formatCents(stats.TotalCollectedCents), formatCents(stats.OutstandingCents))
	return s.Send(ctx, text, blocks)
}

func (s *slackGateway) SendExpenseNotification(ctx context.Context, e *domain.Expense, createdByName string) SendResult {
	if createdByName == "" {
		createdByName = "Unknown"
	}
	eventName := e.EventName
	if eventName == "" {
		eventName = "N/A"
	}

	blocks := []Block{
		header("💸 New Expense Recorded"),
		{"type": "section", "fields": []Block{
			mrkdwn(fmt.Sprintf("*Category:*\n%s", e.Category)),
			mrkdwn(fmt.Sprintf("*Amount:*\n%s", formatCents(e.AmountCents))),
			mrkdwn(fmt.Sprintf("*Event:*\n%s", eventName)),
			mrkdwn(fmt.Sprintf("*Created by:*\n%s", createdByName)),
		}},
	}
	if e.Description != "" {
		blocks = append(blocks, section(fmt.Sprintf("*Description:*\n%s", e.Description)))
	}

	text := fmt.Sprintf("New Expense: %s for %s", formatCents(e.AmountCents), e.Category)
	return s.Send(ctx, text, blocks)
}

func (s *slackGateway) SendDeadlineReminder(ctx context.Context, daysUntilDeadline int, unpaidCount int32, outstandingCents int64) SendResult {
	urgency := "⏰ REMINDER"
	if daysUntilDeadline <= 3 {
		urgency = "🚨 URGENT"
	}

	blocks := []Block{
		header(fmt.Sprintf("%s: Payment Deadline Approaching", urgency)),
		section(fmt.Sprintf("*%d days* until payment deadline\n\n*%d members* still need to pay\n*%s* outstanding",
			daysUntilDeadline, unpaidCount, formatCents(outstandingCents))),
		contextBlock("Consider sending individual reminders to unpaid members"),
	}

	text := fmt.Sprintf("%s: %d days until deadline - %d members unpaid", urgency, daysUntilDeadline, unpaidCount)
	return s.Send(ctx, text, blocks)
}

func (s *slackGateway) TestConnection(ctx context.Context) SendResult {
	blocks := []Block{
		section("🧪 *Test Message*\n\nSlack integration is working correctly! ✅"),
		contextBlock(fmt.Sprintf("Dues Tracker - %s", s.now().Format("January 2, 2006 at 3:04 PM"))),
	}
	return s.Send(ctx, "Test message from Dues Tracker", blocks)
}

func (s *slackGateway) sentContext() Block {
	return contextBlock(fmt.Sprintf("Sent on %s", s.now().Format("January 2, 2006 at 3:04 PM")))
}

func header(text string) Block {
	return Block{
		"type": "header",
		"text": map[string]any{"type": "plain_text", "text": text, "emoji": true},
	}
}

func section(text string) Block {
	return Block{
		"type": "section",
		"text": map[string]any{"type": "mrkdwn", "text": text},
	}
}

func mrkdwn(text string) Block {
	return Block{"type": "mrkdwn", "text": text}
}

func contextBlock(text string) Block {
	return Block{
		"type":     "context",
		"elements": []Block{mrkdwn(text)},
	}
}

func statusEmoji(s domain.PaymentStatus) string {
	switch s {
	case domain.PaymentStatusPaid:
		return "✅"
	case domain.PaymentStatusPending:
		return "⚠️"
	case domain.PaymentStatusOverdue:
		return "🔴"
	}
	return "•"
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
