package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyScheme(t *testing.T) {
	assert.Equal(t, "transaction:tx1", TransactionKey("tx1"))
	assert.Equal(t, "transactions:u1", UserTransactionsKey("u1"))
	assert.Equal(t, "balance:u1", UserBalanceKey("u1"))
}

func TestTTLs(t *testing.T) {
	assert.Equal(t, 3600*time.Second, TransactionTTL)
	assert.Equal(t, 1800*time.Second, UserTransactionsTTL)
	assert.Equal(t, 1800*time.Second, UserBalanceTTL)
}
