package postgres

import (
	"database/sql"

	"dues-tracker-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.MemberRepository
	repository.TransactionRepository
	repository.ExpenseRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		MemberRepository:      NewMemberRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		ExpenseRepository:     NewExpenseRepository(db),
	}
}
