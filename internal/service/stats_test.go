package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dues-tracker-backend/internal/domain"
)

func TestStatsService_GetStats(t *testing.T) {
	ctx := context.Background()
	memberRepo := new(MockMemberRepo)
	expenseRepo := new(MockExpenseRepo)
	svc := NewStatsService(memberRepo, expenseRepo)

	memberRepo.On("Count", ctx).Return(int32(10), nil)
	memberRepo.On("CountByStatus", ctx, domain.PaymentStatusPaid).Return(int32(6), nil)
	memberRepo.On("CountByStatus", ctx, domain.PaymentStatusPending).Return(int32(3), nil)
	memberRepo.On("CountByStatus", ctx, domain.PaymentStatusOverdue).Return(int32(1), nil)
	memberRepo.On("SumDues", ctx).Return(int64(150000), nil)
	memberRepo.On("SumPaid", ctx).Return(int64(97500), nil)
	expenseRepo.On("SumAmount", ctx).Return(int64(30000), nil)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(10), stats.TotalMembers)
	assert.Equal(t, int32(6), stats.PaidMembers)
	assert.Equal(t, int32(3), stats.PendingMembers)
	assert.Equal(t, int32(1), stats.OverdueMembers)
	assert.Equal(t, int64(150000), stats.TotalExpectedCents)
	assert.Equal(t, int64(97500), stats.TotalCollectedCents)
	assert.Equal(t, int64(52500), stats.OutstandingCents)
	assert.Equal(t, 65.0, stats.CollectionRate)
	assert.Equal(t, int64(30000), stats.TotalExpensesCents)
}

func TestStatsService_RepoErrorPropagates(t *testing.T) {
	ctx := context.Background()
	memberRepo := new(MockMemberRepo)
	svc := NewStatsService(memberRepo, new(MockExpenseRepo))

	memberRepo.On("Count", ctx).Return(int32(0), assert.AnError)

	_, err := svc.GetStats(ctx)
	assert.Error(t, err)
}
