package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dues-tracker-backend/internal/config"
	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/service"
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

// MockStats
type MockStats struct {
	mock.Mock
}

func (m *MockStats) GetStats(ctx context.Context) (*domain.ChapterStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChapterStats), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, text string, blocks []service.Block) service.SendResult {
	args := m.Called(ctx, text, blocks)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) SendIndividualReminder(ctx context.Context, member *domain.Member) service.SendResult {
	args := m.Called(ctx, member)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) SendBulkReminderSummary(ctx context.Context, unpaid []service.UnpaidMember, displayLimit int) service.SendResult {
	args := m.Called(ctx, unpaid, displayLimit)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) SendPaymentConfirmation(ctx context.Context, memberName string, amountCents int64, method, transactionID string) service.SendResult {
	args := m.Called(ctx, memberName, amountCents, method, transactionID)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) SendStatusUpdate(ctx context.Context, memberName string, oldStatus, newStatus domain.PaymentStatus, updatedBy string) service.SendResult {
	args := m.Called(ctx, memberName, oldStatus, newStatus, updatedBy)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) SendWeeklySummary(ctx context.Context, stats *domain.ChapterStats) service.SendResult {
	args := m.Called(ctx, stats)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) SendExpenseNotification(ctx context.Context, e *domain.Expense, createdByName string) service.SendResult {
	args := m.Called(ctx, e, createdByName)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) SendDeadlineReminder(ctx context.Context, daysUntilDeadline int, unpaidCount int32, outstandingCents int64) service.SendResult {
	args := m.Called(ctx, daysUntilDeadline, unpaidCount, outstandingCents)
	return args.Get(0).(service.SendResult)
}
func (m *MockGateway) TestConnection(ctx context.Context) service.SendResult {
	args := m.Called(ctx)
	return args.Get(0).(service.SendResult)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Reminders.Hour = 9
	cfg.Reminders.SummaryDisplayLimit = 20
	return cfg
}

func TestSendOverdueReminders(t *testing.T) {
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	t.Run("OnlyOverdueMembersWithBalanceAppear", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gateway := new(MockGateway)
		jr := NewJobRunner(repo, new(MockStats), gateway, testConfig())
		jr.now = func() time.Time { return now }

		members := []domain.Member{
			// Stored status is stale Pending but the due date lapsed.
			{ID: 1, Name: "Late", Role: domain.MemberRoleMember, DuesAmountCents: 15000, AmountPaidCents: 5000,
				PaymentStatus: domain.PaymentStatusPending, DueDate: &past},
			// Not yet due.
			{ID: 2, Name: "OnTime", DuesAmountCents: 15000, AmountPaidCents: 5000,
				PaymentStatus: domain.PaymentStatusPending, DueDate: &future},
			// Fully paid, lapsed date is irrelevant.
			{ID: 3, Name: "Settled", DuesAmountCents: 15000, AmountPaidCents: 15000,
				PaymentStatus: domain.PaymentStatusPaid, DueDate: &past},
		}
		repo.On("List", mock.Anything).Return(members, nil)
		gateway.On("SendBulkReminderSummary", mock.Anything,
			mock.MatchedBy(func(unpaid []service.UnpaidMember) bool {
				return len(unpaid) == 1 && unpaid[0].Name == "Late" &&
					unpaid[0].AmountDueCents == 10000 &&
					unpaid[0].Status == domain.PaymentStatusOverdue
			}), 20).Return(service.SendResult{Success: true}).Once()

		jr.SendOverdueReminders()
		gateway.AssertExpectations(t)
	})

	t.Run("NoOverdueMembersNoSend", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gateway := new(MockGateway)
		jr := NewJobRunner(repo, new(MockStats), gateway, testConfig())
		jr.now = func() time.Time { return now }

		repo.On("List", mock.Anything).Return([]domain.Member{}, nil)

		jr.SendOverdueReminders()
		gateway.AssertNotCalled(t, "SendBulkReminderSummary", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GatewayFailureIsSwallowed", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gateway := new(MockGateway)
		jr := NewJobRunner(repo, new(MockStats), gateway, testConfig())
		jr.now = func() time.Time { return now }

		members := []domain.Member{
			{ID: 1, Name: "Late", DuesAmountCents: 15000, PaymentStatus: domain.PaymentStatusPending, DueDate: &past},
		}
		repo.On("List", mock.Anything).Return(members, nil)
		gateway.On("SendBulkReminderSummary", mock.Anything, mock.Anything, 20).
			Return(service.SendResult{Success: false, StatusCode: 500})

		assert.NotPanics(t, jr.SendOverdueReminders)
	})
}

func TestSendPendingReminders(t *testing.T) {
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 5)

	repo := new(MockMemberRepo)
	gateway := new(MockGateway)
	jr := NewJobRunner(repo, new(MockStats), gateway, testConfig())
	jr.now = func() time.Time { return now }

	members := []domain.Member{
		{ID: 1, Name: "Owes", DuesAmountCents: 15000, AmountPaidCents: 2000,
			PaymentStatus: domain.PaymentStatusPending, DueDate: &future},
		{ID: 2, Name: "Paid", DuesAmountCents: 15000, AmountPaidCents: 15000,
			PaymentStatus: domain.PaymentStatusPaid},
	}
	repo.On("List", mock.Anything).Return(members, nil)
	gateway.On("SendBulkReminderSummary", mock.Anything,
		mock.MatchedBy(func(unpaid []service.UnpaidMember) bool {
			return len(unpaid) == 1 && unpaid[0].Name == "Owes"
		}), 20).Return(service.SendResult{Success: true}).Once()

	jr.SendPendingReminders()
	gateway.AssertExpectations(t)
}

func TestSendWeeklySummary(t *testing.T) {
	stats := &domain.ChapterStats{TotalMembers: 10, CollectionRate: 65}

	t.Run("SendsAggregatedStats", func(t *testing.T) {
		statsSvc := new(MockStats)
		gateway := new(MockGateway)
		jr := NewJobRunner(new(MockMemberRepo), statsSvc, gateway, testConfig())

		statsSvc.On("GetStats", mock.Anything).Return(stats, nil)
		gateway.On("SendWeeklySummary", mock.Anything, stats).Return(service.SendResult{Success: true}).Once()

		jr.SendWeeklySummary()
		gateway.AssertExpectations(t)
	})

	t.Run("StatsErrorNoSend", func(t *testing.T) {
		statsSvc := new(MockStats)
		gateway := new(MockGateway)
		jr := NewJobRunner(new(MockMemberRepo), statsSvc, gateway, testConfig())

		statsSvc.On("GetStats", mock.Anything).Return(nil, assert.AnError)

		jr.SendWeeklySummary()
		gateway.AssertNotCalled(t, "SendWeeklySummary", mock.Anything, mock.Anything)
	})
}

func TestSendDeadlineReminder(t *testing.T) {
	now := time.Date(2025, 3, 25, 9, 0, 0, 0, time.Local)

	t.Run("DaysComputedAtFireTime", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gateway := new(MockGateway)
		cfg := testConfig()
		cfg.Dues.PaymentDeadline = "2025-04-01"
		jr := NewJobRunner(repo, new(MockStats), gateway, cfg)
		jr.now = func() time.Time { return now }

		members := []domain.Member{
			{ID: 1, DuesAmountCents: 15000, AmountPaidCents: 5000},
			{ID: 2, DuesAmountCents: 15000, AmountPaidCents: 15000},
		}
		repo.On("List", mock.Anything).Return(members, nil)
		gateway.On("SendDeadlineReminder", mock.Anything, 7, int32(1), int64(10000)).
			Return(service.SendResult{Success: true}).Once()

		jr.SendDeadlineReminder()
		gateway.AssertExpectations(t)
	})

	t.Run("PassedDeadlineIsNoOp", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gateway := new(MockGateway)
		cfg := testConfig()
		cfg.Dues.PaymentDeadline = "2025-03-01"
		jr := NewJobRunner(repo, new(MockStats), gateway, cfg)
		jr.now = func() time.Time { return now }

		jr.SendDeadlineReminder()
		repo.AssertNotCalled(t, "List", mock.Anything)
		gateway.AssertNotCalled(t, "SendDeadlineReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NoDeadlineConfiguredIsNoOp", func(t *testing.T) {
		gateway := new(MockGateway)
		jr := NewJobRunner(new(MockMemberRepo), new(MockStats), gateway, testConfig())
		jr.now = func() time.Time { return now }

		jr.SendDeadlineReminder()
		gateway.AssertNotCalled(t, "SendDeadlineReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AllPaidIsNoSend", func(t *testing.T) {
		repo := new(MockMemberRepo)
		gateway := new(MockGateway)
		cfg := testConfig()
		cfg.Dues.PaymentDeadline = "2025-04-01"
		jr := NewJobRunner(repo, new(MockStats), gateway, cfg)
		jr.now = func() time.Time { return now }

		repo.On("List", mock.Anything).Return([]domain.Member{
			{ID: 1, DuesAmountCents: 15000, AmountPaidCents: 15000},
		}, nil)

		jr.SendDeadlineReminder()
		gateway.AssertNotCalled(t, "SendDeadlineReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestJobPanicIsContained(t *testing.T) {
	repo := new(MockMemberRepo)
	jr := NewJobRunner(repo, new(MockStats), new(MockGateway), testConfig())

	// A nil slice from the repo with an error makes collectUnpaid bail out
	// gracefully rather than crash the runner.
	repo.On("List", mock.Anything).Return(nil, assert.AnError)
	assert.NotPanics(t, jr.SendOverdueReminders)
}
