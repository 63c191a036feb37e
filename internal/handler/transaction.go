package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jacksonn455/wallet-service/internal/auth"
	"github.com/jacksonn455/wallet-service/internal/domain"
	"github.com/jacksonn455/wallet-service/internal/logging"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type transactionService interface {
	CreateTransaction(ctx context.Context, userID string, amount decimal.Decimal, txType domain.TransactionType, description *string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error)
	GetAllTransactions(ctx context.Context, page, limit int) ([]domain.Transaction, int, error)
}

type TransactionHandler struct {
	transactions transactionService
}

func NewTransactionHandler(transactions transactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description *string         `json:"description"`
}

func (r createTransactionRequest) validate() *AppError {
	if r.Amount.IsZero() || r.Type == "" {
		return ErrMissingAmountType
	}
	if !domain.TransactionType(r.Type).IsValid() {
		return ErrTypeNotAllowed
	}
	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest)
		return
	}

	if appErr := req.validate(); appErr != nil {
		RespondAppError(w, appErr)
		return
	}

	tx, err := h.transactions.CreateTransaction(r.Context(), userID, req.Amount, domain.TransactionType(req.Type), req.Description)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, "Transaction created successfully", tx)
}

func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrTransactionNotFound)
		return
	}

	tx, err := h.transactions.GetTransactionByID(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get transaction", "transaction_id", id, "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, "", tx)
}

func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken)
		return
	}

	txs, err := h.transactions.GetUserTransactions(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list user transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	if txs == nil {
		txs = []domain.Transaction{}
	}
	count := len(txs)
	RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    txs,
		Count:   &count,
	})
}

func (h *TransactionHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)

	txs, total, err := h.transactions.GetAllTransactions(r.Context(), page, limit)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	if txs == nil {
		txs = []domain.Transaction{}
	}
	RespondJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    txs,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	})
}

func (h *TransactionHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken)
		return
	}

	balance, err := h.transactions.GetUserBalance(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, "", balance)
}

func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
