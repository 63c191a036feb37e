package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksonn455/wallet-service/internal/domain"
)

// The queue message is a wire contract consumed by other systems:
// {event, data, timestamp} with the full transaction under data.
func TestNewTransactionCreatedWireFormat(t *testing.T) {
	desc := "salary"
	tx := domain.Transaction{
		ID:          uuid.MustParse("7b1c3f7e-9f1d-4f0a-8b2a-0dc6a1f2b370"),
		UserID:      "u1",
		Amount:      decimal.RequireFromString("100.50"),
		Type:        domain.TransactionTypeCredit,
		Description: &desc,
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(NewTransactionCreated(tx))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "TRANSACTION_CREATED", decoded["event"])

	ts, ok := decoded["timestamp"].(string)
	require.True(t, ok, "timestamp must be a string")
	_, err = time.Parse(time.RFC3339, ts)
	require.NoError(t, err, "timestamp must be RFC3339")

	data, ok := decoded["data"].(map[string]any)
	require.True(t, ok, "data must hold the transaction object")
	assert.Equal(t, "7b1c3f7e-9f1d-4f0a-8b2a-0dc6a1f2b370", data["id"])
	assert.Equal(t, "u1", data["userId"])
	assert.Equal(t, "100.50", data["amount"])
	assert.Equal(t, "CREDIT", data["type"])
	assert.Equal(t, "salary", data["description"])
	assert.Equal(t, "2026-08-01T12:00:00Z", data["createdAt"])
}

func TestNewTransactionCreatedTimestampIsFresh(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)

	msg := NewTransactionCreated(domain.Transaction{ID: uuid.New(), UserID: "u1"})

	stamped, err := time.Parse(time.RFC3339, msg.Timestamp)
	require.NoError(t, err)
	assert.False(t, stamped.Before(before))
	assert.False(t, stamped.After(time.Now().UTC().Add(time.Second)))
}
