package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidType   = errors.New("type must be CREDIT or DEBIT")

	// ErrEventPublish means the transaction was persisted but the
	// TRANSACTION_CREATED announcement failed. Callers must not treat it
	// as "transaction did not happen".
	ErrEventPublish = errors.New("event publish failed")
)
