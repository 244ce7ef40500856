package service

import (
	"context"
	"fmt"

	"dues-tracker-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService creates the SendGrid-backed receipt mailer.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendPaymentReceipt(ctx context.Context, email, name string, amountCents int64, transactionID, receiptURL string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(name, email)

	subject := "Payment Receipt - Chapter Dues"
	plainText := fmt.Sprintf("Hi %s,\n\nWe received your dues payment of %s.\n\nTransaction ID: %s\n\nThank you!",
		name, formatCents(amountCents), transactionID)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Payment Received</h2>
				<p>Hi %s,</p>
				<p>We received your dues payment of <strong>%s</strong>.</p>
				<p>Transaction ID: <code>%s</code></p>
				<p><a href="%s">View your receipt</a></p>
				<p>Thank you!</p>
			</body>
		</html>
	`, name, formatCents(amountCents), transactionID, receiptURL)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send_receipt", "to", email)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send_receipt", err)
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d", response.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send_receipt", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "send_receipt", nil)
	return nil
}
