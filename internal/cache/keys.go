package cache

import "time"

// Key scheme and TTLs for the cache-aside layer. Entries are deleted on
// write, never updated in place.
const (
	TransactionTTL      = time.Hour
	UserTransactionsTTL = 30 * time.Minute
	UserBalanceTTL      = 30 * time.Minute
)

func TransactionKey(id string) string {
	return "transaction:" + id
}

func UserTransactionsKey(userID string) string {
	return "transactions:" + userID
}

func UserBalanceKey(userID string) string {
	return "balance:" + userID
}
