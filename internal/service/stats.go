package service

import (
	"context"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/repository"
)

type statsService struct {
	memberRepo  repository.MemberRepository
	expenseRepo repository.ExpenseRepository
}

func NewStatsService(memberRepo repository.MemberRepository, expenseRepo repository.ExpenseRepository) StatsService {
	return &statsService{memberRepo: memberRepo, expenseRepo: expenseRepo}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.ChapterStats, error) {
	total, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := s.memberRepo.CountByStatus(ctx, domain.PaymentStatusPaid)
	if err != nil {
		return nil, err
	}
	pending, err := s.memberRepo.CountByStatus(ctx, domain.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	overdue, err := s.memberRepo.CountByStatus(ctx, domain.PaymentStatusOverdue)
	if err != nil {
		return nil, err
	}
	expected, err := s.memberRepo.SumDues(ctx)
	if err != nil {
		return nil, err
	}
	collected, err := s.memberRepo.SumPaid(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.SumAmount(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ChapterStats{
		TotalMembers:        total,
		PaidMembers:         paid,
		PendingMembers:      pending,
		OverdueMembers:      overdue,
		TotalExpectedCents:  expected,
		TotalCollectedCents: collected,
		OutstandingCents:    expected - collected,
		CollectionRate:      domain.ComputeCollectionRate(collected, expected),
		TotalExpensesCents:  expenses,
	}, nil
}
