package service

import (
	"context"
	"errors"
	"fmt"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/repository"
)

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	memberRepo  repository.MemberRepository
	gateway     NotificationGateway
	notifier    *Notifier
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, memberRepo repository.MemberRepository, gateway NotificationGateway, notifier *Notifier) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		memberRepo:  memberRepo,
		gateway:     gateway,
		notifier:    notifier,
	}
}

func (s *expenseService) CreateExpense(ctx context.Context, e *domain.Expense) error {
	if e.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidExpense)
	}
	if e.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidExpense, e.AmountCents)
	}

	createdByName := ""
	if e.CreatedBy != nil {
		if m, err := s.memberRepo.GetByID(ctx, *e.CreatedBy); err == nil {
			createdByName = m.Name
		}
	}

	if err := s.expenseRepo.Create(ctx, e); err != nil {
		return err
	}

	expense := *e
	s.notifier.Enqueue(func(ctx context.Context) {
		s.gateway.SendExpenseNotification(ctx, &expense, createdByName)
	})
	return nil
}

func (s *expenseService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.expenseRepo.List(ctx)
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int32) error {
	err := s.expenseRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: id %d", ErrExpenseNotFound, id)
	}
	return err
}
