package postgres

import (
	"context"
	"database/sql"
	"time"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (member_id, amount_cents, payment_method, external_transaction_id, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	t.CreatedOn = now.Format("2006-01-02")
	var memberID any
	if t.MemberID != nil {
		memberID = *t.MemberID
	}
	return r.db.QueryRowContext(ctx, query, memberID, t.AmountCents, t.PaymentMethod,
		t.ExternalTransactionID, t.Status, now).Scan(&t.ID)
}

func (r *transactionRepository) ListByMember(ctx context.Context, memberID int32) ([]domain.Transaction, error) {
	query := `SELECT id, member_id, amount_cents, COALESCE(payment_method, ''), COALESCE(external_transaction_id, ''), status, created_on
	          FROM transactions WHERE member_id = $1 ORDER BY created_on DESC, id DESC`
	return r.queryTransactions(ctx, query, memberID)
}

func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT id, member_id, amount_cents, COALESCE(payment_method, ''), COALESCE(external_transaction_id, ''), status, created_on
	          FROM transactions ORDER BY created_on DESC, id DESC`
	return r.queryTransactions(ctx, query)
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var memberID sql.NullInt32
		var createdOn time.Time
		if err := rows.Scan(&t.ID, &memberID, &t.AmountCents, &t.PaymentMethod,
			&t.ExternalTransactionID, &t.Status, &createdOn); err != nil {
			return nil, err
		}
		if memberID.Valid {
			id := memberID.Int32
			t.MemberID = &id
		}
		t.CreatedOn = createdOn.Format("2006-01-02")
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
