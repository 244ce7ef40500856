package repository

import (
	"context"
	"errors"

	"dues-tracker-backend/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	ListByStatus(ctx context.Context, statuses []domain.PaymentStatus) ([]domain.Member, error)

	// Update persists all member fields including the derived payment
	// status. Services recompute the status before calling it; it is never
	// written from inbound request data directly.
	Update(ctx context.Context, m *domain.Member) error

	// AddPayment applies amount_paid += amount and the freshly resolved
	// status in a single statement, so concurrent payment submissions for
	// the same member serialize on the row instead of losing updates.
	AddPayment(ctx context.Context, id int32, amountCents int64, status domain.PaymentStatus) (*domain.Member, error)

	// Delete removes the member row. Transactions are detached, not
	// cascade-deleted, so payment history survives.
	Delete(ctx context.Context, id int32) error

	CountByStatus(ctx context.Context, status domain.PaymentStatus) (int32, error)
	Count(ctx context.Context) (int32, error)
	CountWithOutstanding(ctx context.Context) (int32, error)
	SumDues(ctx context.Context) (int64, error)
	SumPaid(ctx context.Context) (int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	ListByMember(ctx context.Context, memberID int32) ([]domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id int32) (*domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	Delete(ctx context.Context, id int32) error
	SumAmount(ctx context.Context) (int64, error)
}
