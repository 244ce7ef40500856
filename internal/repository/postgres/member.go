package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/repository"

	"github.com/lib/pq"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, name, email, COALESCE(phone, ''), dues_amount_cents, amount_paid_cents, payment_status, role, COALESCE(password_hash, ''), due_date, created_on`

func scanMember(row interface{ Scan(...any) error }) (*domain.Member, error) {
	m := &domain.Member{}
	var dueDate sql.NullTime
	var createdOn time.Time
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.DuesAmountCents, &m.AmountPaidCents,
		&m.PaymentStatus, &m.Role, &m.PasswordHash, &dueDate, &createdOn)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d := dueDate.Time
		m.DueDate = &d
	}
	m.CreatedOn = createdOn.Format("2006-01-02")
	return m, nil
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (name, email, phone, dues_amount_cents, amount_paid_cents, payment_status, role, password_hash, due_date, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	m.CreatedOn = now.Format("2006-01-02")
	var dueDate any
	if m.DueDate != nil {
		dueDate = *m.DueDate
	}
	return r.db.QueryRowContext(ctx, query, m.Name, m.Email, m.Phone, m.DuesAmountCents, m.AmountPaidCents,
		m.PaymentStatus, m.Role, m.PasswordHash, dueDate, now).Scan(&m.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return m, err
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE LOWER(email) = LOWER($1)`
	m, err := scanMember(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return m, err
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY name`
	return r.queryMembers(ctx, query)
}

func (r *memberRepository) ListByStatus(ctx context.Context, statuses []domain.PaymentStatus) ([]domain.Member, error) {
	lowered := make([]string, 0, len(statuses))
	for _, s := range statuses {
		lowered = append(lowered, string(s))
	}
	query := `SELECT ` + memberColumns + ` FROM members WHERE LOWER(payment_status) = ANY(SELECT LOWER(s) FROM unnest($1::text[]) AS s) ORDER BY name`
	return r.queryMembers(ctx, query, pq.Array(lowered))
}

func (r *memberRepository) queryMembers(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET name=$1, email=$2, phone=$3, dues_amount_cents=$4, amount_paid_cents=$5, payment_status=$6, role=$7, due_date=$8 WHERE id=$9`
	var dueDate any
	if m.DueDate != nil {
		dueDate = *m.DueDate
	}
	res, err := r.db.ExecContext(ctx, query, m.Name, m.Email, m.Phone, m.DuesAmountCents, m.AmountPaidCents,
		m.PaymentStatus, m.Role, dueDate, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *memberRepository) AddPayment(ctx context.Context, id int32, amountCents int64, status domain.PaymentStatus) (*domain.Member, error) {
	query := `UPDATE members SET amount_paid_cents = amount_paid_cents + $1, payment_status = $2 WHERE id = $3 RETURNING ` + memberColumns
	m, err := scanMember(r.db.QueryRowContext(ctx, query, amountCents, status, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return m, err
}

func (r *memberRepository) Delete(ctx context.Context, id int32) error {
	// Detach history first so the delete never cascades through payments.
	if _, err := r.db.ExecContext(ctx, `UPDATE transactions SET member_id = NULL WHERE member_id = $1`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *memberRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	return count, err
}

func (r *memberRepository) CountByStatus(ctx context.Context, status domain.PaymentStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members WHERE payment_status = $1`, status).Scan(&count)
	return count, err
}

func (r *memberRepository) CountWithOutstanding(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members WHERE dues_amount_cents - amount_paid_cents > 0`).Scan(&count)
	return count, err
}

func (r *memberRepository) SumDues(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(dues_amount_cents), 0) FROM members`).Scan(&sum)
	return sum, err
}

func (r *memberRepository) SumPaid(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount_paid_cents), 0) FROM members`).Scan(&sum)
	return sum, err
}
