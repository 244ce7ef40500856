package service

import (
	"context"
	"errors"
	"time"

	"dues-tracker-backend/internal/domain"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrPaymentFailed   = errors.New("payment was not completed")
	ErrInvalidExpense  = errors.New("invalid expense")
)

// MemberUpdate carries the fields an admin may change on a member. The
// payment status is deliberately absent: it is derived, and any inbound
// status value is discarded and recomputed from facts.
type MemberUpdate struct {
	Name            *string
	Email           *string
	Phone           *string
	Role            *domain.MemberRole
	DuesAmountCents *int64
	AmountPaidCents *int64
	DueDate         *time.Time
	ClearDueDate    bool
}

type MemberService interface {
	CreateMember(ctx context.Context, name, email, phone string, duesAmountCents int64, role domain.MemberRole, password string, dueDate *time.Time) (*domain.Member, error)
	GetMember(ctx context.Context, id int32) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
	UpdateMember(ctx context.Context, id int32, update MemberUpdate) (*domain.Member, error)
	DeleteMember(ctx context.Context, id int32) error
}

type PaymentService interface {
	// ProcessPayment charges the provider and, on success, appends a
	// transaction, bumps the member's paid amount and recomputes status.
	ProcessPayment(ctx context.Context, memberID int32, amountCents int64, sourceID string) (*domain.Member, *domain.Transaction, error)
	RecordManualPayment(ctx context.Context, memberID int32, amountCents int64, method string) (*domain.Member, *domain.Transaction, error)
	CreatePaymentLink(ctx context.Context, memberID int32) (*PaymentLink, error)
	ListTransactions(ctx context.Context, memberID int32) ([]domain.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]domain.Transaction, error)
}

type ExpenseService interface {
	CreateExpense(ctx context.Context, e *domain.Expense) error
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	DeleteExpense(ctx context.Context, id int32) error
}

type StatsService interface {
	GetStats(ctx context.Context) (*domain.ChapterStats, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, member *domain.Member, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

// SendResult is the gateway delivery outcome. Delivery problems surface
/// here as Success=false, never as an error: the gateway is best-effort and
// must not crash or retry inside the caller.
type SendResult struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// UnpaidMember is one line item in a bulk reminder summary.
type UnpaidMember struct {
	Name           string
	Role           string
	AmountDueCents int64
	Status         domain.PaymentStatus
}

// NotificationGateway delivers messages to the chapter's Slack channel via
// an incoming webhook. It never mutates domain state.
type NotificationGateway interface {
	Send(ctx context.Context, text string, blocks []Block) SendResult
	SendIndividualReminder(ctx context.Context, m *domain.Member) SendResult
	SendBulkReminderSummary(ctx context.Context, unpaid []UnpaidMember, displayLimit int) SendResult
	SendPaymentConfirmation(ctx context.Context, memberName string, amountCents int64, method, transactionID string) SendResult
	SendStatusUpdate(ctx context.Context, memberName string, oldStatus, newStatus domain.PaymentStatus, updatedBy string) SendResult
	SendWeeklySummary(ctx context.Context, stats *domain.ChapterStats) SendResult
	SendExpenseNotification(ctx context.Context, e *domain.Expense, createdByName string) SendResult
	SendDeadlineReminder(ctx context.Context, daysUntilDeadline int, unpaidCount int32, outstandingCents int64) SendResult
	TestConnection(ctx context.Context) SendResult
}

// PaymentResult is the provider's answer to a charge or lookup.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	AmountCents   int64  `json:"amount_cents"`
	ReceiptURL    string `json:"receipt_url,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	Message       string `json:"message,omitempty"`
}

// PaymentLink is a hosted checkout link for a member's outstanding dues.
type PaymentLink struct {
	LinkID  string `json:"payment_link_id"`
	URL     string `json:"url"`
	LongURL string `json:"long_url"`
}

// PaymentProvider is the third-party payment capability.
type PaymentProvider interface {
	CreatePayment(ctx context.Context, amountCents int64, sourceID, memberEmail, memberName string) (*PaymentResult, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentResult, error)
	CreatePaymentLink(ctx context.Context, amountCents int64, memberName string, memberID int32) (*PaymentLink, error)
	RefundPayment(ctx context.Context, paymentID string, amountCents int64, reason string) (*PaymentResult, error)
}

// EmailService sends receipt emails to members after a successful payment.
type EmailService interface {
	SendPaymentReceipt(ctx context.Context, email, name string, amountCents int64, transactionID, receiptURL string) error
}
