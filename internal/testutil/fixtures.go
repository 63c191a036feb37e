package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jacksonn455/wallet-service/internal/domain"
)

// SeedTransaction inserts one ledger row with an explicit created_at so
// tests can control listing order.
func SeedTransaction(t *testing.T, db *sql.DB, userID, amount string, txType domain.TransactionType, createdAt time.Time) domain.Transaction {
	t.Helper()

	tx := domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    decimal.RequireFromString(amount),
		Type:      txType,
		CreatedAt: createdAt,
	}

	_, err := db.Exec(
		`INSERT INTO transactions (id, user_id, amount, type, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		tx.ID, tx.UserID, tx.Amount, tx.Type, tx.Description, tx.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return tx
}

// SeedHistory inserts n transactions for userID one minute apart, oldest
// first, and returns them in insertion order.
func SeedHistory(t *testing.T, db *sql.DB, userID string, n int, txType domain.TransactionType) []domain.Transaction {
	t.Helper()

	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	txs := make([]domain.Transaction, 0, n)
	for i := range n {
		txs = append(txs, SeedTransaction(t, db, userID, "10.00", txType, base.Add(time.Duration(i)*time.Minute)))
	}
	return txs
}
