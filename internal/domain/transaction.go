package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Transaction is immutable once created: no update or delete path exists.
// The JSON shape is shared by the API, the cache snapshots, and the
// TRANSACTION_CREATED event payload.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Balance is derived from a user's full transaction history, never stored.
type Balance struct {
	UserID            string          `json:"userId"`
	Balance           decimal.Decimal `json:"balance"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	TotalDebits       decimal.Decimal `json:"totalDebits"`
	TransactionsCount int             `json:"transactionsCount"`
}

// DeriveBalance computes balance = credits - debits over the given
// transactions. An empty history yields zero values, not an error.
func DeriveBalance(userID string, transactions []Transaction) Balance {
	credits := decimal.Zero
	debits := decimal.Zero

	for i := range transactions {
		switch transactions[i].Type {
		case TransactionTypeCredit:
			credits = credits.Add(transactions[i].Amount)
		case TransactionTypeDebit:
			debits = debits.Add(transactions[i].Amount)
		}
	}

	return Balance{
		UserID:            userID,
		Balance:           credits.Sub(debits),
		TotalCredits:      credits,
		TotalDebits:       debits,
		TransactionsCount: len(transactions),
	}
}
