package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/repository"
)

type paymentService struct {
	memberRepo repository.MemberRepository
	txnRepo    repository.TransactionRepository
	provider   PaymentProvider
	gateway    NotificationGateway
	email      EmailService
	notifier   *Notifier
}

func NewPaymentService(
	memberRepo repository.MemberRepository,
	txnRepo repository.TransactionRepository,
	provider PaymentProvider,
	gateway NotificationGateway,
	email EmailService,
	notifier *Notifier,
) PaymentService {
	return &paymentService{
		memberRepo: memberRepo,
		txnRepo:    txnRepo,
		provider:   provider,
		gateway:    gateway,
		email:      email,
		notifier:   notifier,
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, memberID int32, amountCents int64, sourceID string) (*domain.Member, *domain.Transaction, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	result, err := s.provider.CreatePayment(ctx, amountCents, sourceID, m.Email, m.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("payment provider error: %w", err)
	}
	if !result.Success {
		return nil, nil, fmt.Errorf("%w: %s", ErrPaymentFailed, result.Message)
	}

	return s.applyPayment(ctx, m, amountCents, "Square", result.TransactionID, result.ReceiptURL)
}

func (s *paymentService) RecordManualPayment(ctx context.Context, memberID int32, amountCents int64, method string) (*domain.Member, *domain.Transaction, error) {
	if amountCents <= 0 {
		return nil, nil, fmt.Errorf("payment amount must be positive, got %d", amountCents)
	}
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if method == "" {
		method = "Manual"
	}
	return s.applyPayment(ctx, m, amountCents, method, "", "")
}

// applyPayment appends the transaction, increments amount_paid atomically on
// the member row and recomputes the derived status in the same statement,
// then fans out the confirmation notifications fire-and-forget.
func (s *paymentService) applyPayment(ctx context.Context, m *domain.Member, amountCents int64, method, externalID, receiptURL string) (*domain.Member, *domain.Transaction, error) {
	memberID := m.ID
	txn := &domain.Transaction{
		MemberID:              &memberID,
		AmountCents:           amountCents,
		PaymentMethod:         method,
		ExternalTransactionID: externalID,
		Status:                domain.TransactionStatusCompleted,
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, nil, err
	}

	// Status is resolved from the post-payment facts. The increment itself
	// happens row-locally in the store so concurrent payments cannot lose
	// an update.
	status := domain.ResolveStatus(m.AmountPaidCents+amountCents, m.DuesAmountCents, m.DueDate, time.Now())
	updated, err := s.memberRepo.AddPayment(ctx, m.ID, amountCents, status)
	if err != nil {
		return nil, nil, err
	}

	name, email := updated.Name, updated.Email
	s.notifier.Enqueue(func(ctx context.Context) {
		s.gateway.SendPaymentConfirmation(ctx, name, amountCents, method, externalID)
	})
	if s.email != nil && externalID != "" {
		s.notifier.Enqueue(func(ctx context.Context) {
			if err := s.email.SendPaymentReceipt(ctx, email, name, amountCents, externalID, receiptURL); err != nil {
				logger.Error("Failed to send receipt email", "member_id", memberID, "error", err)
			}
		})
	}

	return updated, txn, nil
}

func (s *paymentService) CreatePaymentLink(ctx context.Context, memberID int32) (*PaymentLink, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	outstanding := m.OutstandingCents()
	if outstanding <= 0 {
		return nil, fmt.Errorf("member %d has no outstanding balance", memberID)
	}
	return s.provider.CreatePaymentLink(ctx, outstanding, m.Name, m.ID)
}

func (s *paymentService) ListTransactions(ctx context.Context, memberID int32) ([]domain.Transaction, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.txnRepo.ListByMember(ctx, memberID)
}

func (s *paymentService) ListAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.txnRepo.List(ctx)
}
