package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dues-tracker-backend/internal/domain"
)

var transactionRows = []string{"id", "member_id", "amount_cents", "payment_method", "external_transaction_id", "status", "created_on"}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	memberID := int32(1)
	txn := &domain.Transaction{
		MemberID:              &memberID,
		AmountCents:           10000,
		PaymentMethod:         "Square",
		ExternalTransactionID: "sq-abc",
		Status:                domain.TransactionStatusCompleted,
	}

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(memberID, txn.AmountCents, txn.PaymentMethod, txn.ExternalTransactionID, txn.Status, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, repo.Create(ctx, txn))
	assert.Equal(t, int32(42), txn.ID)
	assert.NotEmpty(t, txn.CreatedOn)
}

func TestTransactionRepository_ListByMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(transactionRows).
		AddRow(2, 1, 10000, "Square", "sq-abc", "Completed", time.Now()).
		AddRow(1, 1, 5000, "Cash", "", "Completed", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE member_id = \\$1").
		WithArgs(int32(1)).
		WillReturnRows(rows)

	txns, err := repo.ListByMember(ctx, 1)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, int32(2), txns[0].ID)
	require.NotNil(t, txns[0].MemberID)
	assert.Equal(t, int32(1), *txns[0].MemberID)
}

func TestTransactionRepository_ListKeepsDetachedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTransactionRepository(db)
	ctx := context.Background()

	// A transaction whose member was removed keeps a NULL member_id.
	rows := sqlmock.NewRows(transactionRows).
		AddRow(3, nil, 7500, "Square", "sq-xyz", "Completed", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM transactions ORDER BY").
		WillReturnRows(rows)

	txns, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Nil(t, txns[0].MemberID)
	assert.Equal(t, int64(7500), txns[0].AmountCents)
}
