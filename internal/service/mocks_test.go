package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dues-tracker-backend/internal/domain"
)

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) ListByStatus(ctx context.Context, statuses []domain.PaymentStatus) ([]domain.Member, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) AddPayment(ctx context.Context, id int32, amountCents int64, status domain.PaymentStatus) (*domain.Member, error) {
	args := m.Called(ctx, id, amountCents, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMemberRepo) CountByStatus(ctx context.Context, status domain.PaymentStatus) (int32, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) CountWithOutstanding(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) SumDues(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMemberRepo) SumPaid(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTransactionRepo) ListByMember(ctx context.Context, memberID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) List(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockExpenseRepo) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) List(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockExpenseRepo) SumAmount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, text string, blocks []Block) SendResult {
	args := m.Called(ctx, text, blocks)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) SendIndividualReminder(ctx context.Context, member *domain.Member) SendResult {
	args := m.Called(ctx, member)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) SendBulkReminderSummary(ctx context.Context, unpaid []UnpaidMember, displayLimit int) SendResult {
	args := m.Called(ctx, unpaid, displayLimit)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) SendPaymentConfirmation(ctx context.Context, memberName string, amountCents int64, method, transactionID string) SendResult {
	args := m.Called(ctx, memberName, amountCents, method, transactionID)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) SendStatusUpdate(ctx context.Context, memberName string, oldStatus, newStatus domain.PaymentStatus, updatedBy string) SendResult {
	args := m.Called(ctx, memberName, oldStatus, newStatus, updatedBy)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) SendWeeklySummary(ctx context.Context, stats *domain.ChapterStats) SendResult {
	args := m.Called(ctx, stats)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) SendExpenseNotification(ctx context.Context, e *domain.Expense, createdByName string) SendResult {
	args := m.Called(ctx, e, createdByName)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) SendDeadlineReminder(ctx context.Context, daysUntilDeadline int, unpaidCount int32, outstandingCents int64) SendResult {
	args := m.Called(ctx, daysUntilDeadline, unpaidCount, outstandingCents)
	return args.Get(0).(SendResult)
}
func (m *MockGateway) TestConnection(ctx context.Context) SendResult {
	args := m.Called(ctx)
	return args.Get(0).(SendResult)
}

// MockProvider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreatePayment(ctx context.Context, amountCents int64, sourceID, memberEmail, memberName string) (*PaymentResult, error) {
	args := m.Called(ctx, amountCents, sourceID, memberEmail, memberName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentResult), args.Error(1)
}
func (m *MockProvider) GetPayment(ctx context.Context, paymentID string) (*PaymentResult, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentResult), args.Error(1)
}
func (m *MockProvider) CreatePaymentLink(ctx context.Context, amountCents int64, memberName string, memberID int32) (*PaymentLink, error) {
	args := m.Called(ctx, amountCents, memberName, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentLink), args.Error(1)
}
func (m *MockProvider) RefundPayment(ctx context.Context, paymentID string, amountCents int64, reason string) (*PaymentResult, error) {
	args := m.Called(ctx, paymentID, amountCents, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentResult), args.Error(1)
}

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendPaymentReceipt(ctx context.Context, email, name string, amountCents int64, transactionID, receiptURL string) error {
	args := m.Called(ctx, email, name, amountCents, transactionID, receiptURL)
	return args.Error(0)
}
