package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/repository"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (category, amount_cents, description, event_name, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	e.CreatedOn = now.Format("2006-01-02")
	var createdBy any
	if e.CreatedBy != nil {
		createdBy = *e.CreatedBy
	}
	return r.db.QueryRowContext(ctx, query, e.Category, e.AmountCents, e.Description, e.EventName, createdBy, now).Scan(&e.ID)
}

func (r *expenseRepository) GetByID(ctx context.Context, id int32) (*domain.Expense, error) {
	query := `SELECT id, category, amount_cents, COALESCE(description, ''), COALESCE(event_name, ''), created_by, created_on
	          FROM expenses WHERE id = $1`
	e, err := r.scanExpense(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return e, err
}

func (r *expenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	query := `SELECT id, category, amount_cents, COALESCE(description, ''), COALESCE(event_name, ''), created_by, created_on
	          FROM expenses ORDER BY created_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := r.scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *expenseRepository) SumAmount(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM expenses`).Scan(&sum)
	return sum, err
}

func (r *expenseRepository) scanExpense(row interface{ Scan(...any) error }) (*domain.Expense, error) {
	e := &domain.Expense{}
	var createdBy sql.NullInt32
	var createdOn time.Time
	err := row.Scan(&e.ID, &e.Category, &e.AmountCents, &e.Description, &e.EventName, &createdBy, &createdOn)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		id := createdBy.Int32
		e.CreatedBy = &id
	}
	e.CreatedOn = createdOn.Format("2006-01-02")
	return e, nil
}
