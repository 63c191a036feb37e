package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jacksonn455/wallet-service/internal/domain"
)

type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, message string, data any) {
	RespondJSON(w, status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespondAppError(w http.ResponseWriter, appErr *AppError) {
	RespondJSON(w, appErr.Status, APIResponse{
		Success: false,
		Message: appErr.Message,
	})
}

// RespondDomainError maps service-layer errors to client-visible statuses.
// Absence is a 404, bad input a 400, a failed announcement after a
// successful persist a 502, anything else a 500.
func RespondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		RespondAppError(w, ErrTransactionNotFound)
	case errors.Is(err, domain.ErrInvalidAmount):
		RespondAppError(w, ErrAmountNotPositive)
	case errors.Is(err, domain.ErrInvalidType):
		RespondAppError(w, ErrTypeNotAllowed)
	case errors.Is(err, domain.ErrEventPublish):
		RespondAppError(w, ErrEventNotPublished)
	default:
		slog.Error("unhandled domain error", "error", err)
		RespondAppError(w, ErrInternalError)
	}
}
