package handler

import "net/http"

type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingAuthHeader = &AppError{http.StatusUnauthorized, "Authorization header missing"}
	ErrMissingToken      = &AppError{http.StatusUnauthorized, "Token missing"}
	ErrInvalidToken      = &AppError{http.StatusUnauthorized, "Invalid token"}
	ErrTokenExpired      = &AppError{http.StatusUnauthorized, "Token expired"}

	ErrInvalidRequest      = &AppError{http.StatusBadRequest, "Invalid request body"}
	ErrMissingAmountType   = &AppError{http.StatusBadRequest, "Amount and type are required"}
	ErrAmountNotPositive   = &AppError{http.StatusBadRequest, "Amount must be greater than 0"}
	ErrTypeNotAllowed      = &AppError{http.StatusBadRequest, "Type must be CREDIT or DEBIT"}
	ErrTransactionNotFound = &AppError{http.StatusNotFound, "Transaction not found"}

	// The store write already happened when this is returned: the caller
	// must treat the transaction as created, announcement uncertain.
	ErrEventNotPublished = &AppError{http.StatusBadGateway, "Transaction was recorded but could not be announced"}

	ErrInternalError = &AppError{http.StatusInternalServerError, "Internal server error"}
)
