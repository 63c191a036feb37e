package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jacksonn455/wallet-service/internal/domain"
)

const transactionColumns = `id, user_id, amount, type, description, created_at`

type scanner interface {
	Scan(dest ...any) error
}

// TransactionRepository is the durable store for the append-only ledger.
// Rows are inserted once and never updated or deleted.
type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO transactions (id, user_id, amount, type, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		tx.ID, tx.UserID, tx.Amount, tx.Type, tx.Description,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id,
	)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return tx, nil
}

func (r *TransactionRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("GetByUserID: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("GetByUserID: scan: %w", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetByUserID: rows: %w", err)
	}
	return txs, nil
}

// GetAll returns one page of the global ledger, newest first, plus the
// total row count so callers can compute the page count.
func (r *TransactionRepository) GetAll(ctx context.Context, page, limit int) ([]domain.Transaction, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions`,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("GetAll: count: %w", err)
	}

	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("GetAll: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("GetAll: scan: %w", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("GetAll: rows: %w", err)
	}
	return txs, total, nil
}

func scanTransaction(s scanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := s.Scan(
		&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Description, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
