package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jacksonn455/wallet-service/internal/cache"
	"github.com/jacksonn455/wallet-service/internal/domain"
	"github.com/jacksonn455/wallet-service/internal/logging"
)

type transactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Transaction, error)
	GetAll(ctx context.Context, page, limit int) ([]domain.Transaction, int, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type eventPublisher interface {
	PublishTransactionCreated(ctx context.Context, tx domain.Transaction) error
}

// TransactionService orchestrates the three collaborators: durable store,
// cache, and event channel. It holds no state of its own; all handles are
// safe for concurrent requests.
type TransactionService struct {
	repo      transactionRepo
	cache     cacheStore
	publisher eventPublisher
}

func NewTransactionService(repo transactionRepo, cache cacheStore, publisher eventPublisher) *TransactionService {
	return &TransactionService{repo: repo, cache: cache, publisher: publisher}
}

// CreateTransaction persists a new transaction, announces it on the event
// channel, then invalidates the user's cached balance and list.
//
// A store failure aborts everything. A publish failure after a successful
// persist is returned as domain.ErrEventPublish: the row exists, the
// announcement does not, and nothing is rolled back. Invalidation failures
// are logged only; the worst outcome is a stale read bounded by the TTL.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, amount decimal.Decimal, txType domain.TransactionType, description *string) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("CreateTransaction: %w", domain.ErrInvalidAmount)
	}
	if !txType.IsValid() {
		return nil, fmt.Errorf("CreateTransaction: %w", domain.ErrInvalidType)
	}

	tx := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("CreateTransaction: %w", err)
	}

	if err := s.publisher.PublishTransactionCreated(ctx, *tx); err != nil {
		log.Error("event publish failed after persist",
			"transaction_id", tx.ID,
			"user_id", userID,
			"error", err,
		)
		return nil, fmt.Errorf("CreateTransaction: %w: %w", domain.ErrEventPublish, err)
	}

	s.invalidateUserCache(ctx, userID)

	log.Info("transaction created",
		"transaction_id", tx.ID,
		"user_id", userID,
		"type", tx.Type,
	)

	return tx, nil
}

// GetTransactionByID reads through the cache: hit returns the snapshot,
// miss queries the store and repopulates with a one hour TTL.
func (s *TransactionService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	key := cache.TransactionKey(id.String())

	var cached domain.Transaction
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("GetTransactionByID: %w", err)
	}

	s.cacheSet(ctx, key, tx, cache.TransactionTTL)
	return tx, nil
}

func (s *TransactionService) GetUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	key := cache.UserTransactionsKey(userID)

	var cached []domain.Transaction
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	txs, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetUserTransactions: %w", err)
	}

	s.cacheSet(ctx, key, txs, cache.UserTransactionsTTL)
	return txs, nil
}

// GetUserBalance derives the balance from the user's full history. On a
// cold cache it reads the store directly rather than going through the
// list cache: an independent read, deliberately.
func (s *TransactionService) GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	key := cache.UserBalanceKey(userID)

	var cached domain.Balance
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	txs, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetUserBalance: %w", err)
	}

	balance := domain.DeriveBalance(userID, txs)

	s.cacheSet(ctx, key, balance, cache.UserBalanceTTL)
	return &balance, nil
}

// GetAllTransactions is never cached: it always reads the store.
func (s *TransactionService) GetAllTransactions(ctx context.Context, page, limit int) ([]domain.Transaction, int, error) {
	txs, total, err := s.repo.GetAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("GetAllTransactions: %w", err)
	}
	return txs, total, nil
}

// cacheGet probes the cache and unmarshals into dest. Any failure (miss,
// cache down, corrupt snapshot) counts as a miss; only real errors are
// logged.
func (s *TransactionService) cacheGet(ctx context.Context, key string, dest any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logging.FromContext(ctx).Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logging.FromContext(ctx).Warn("corrupt cache entry", "key", key, "error", err)
		return false
	}
	return true
}

// cacheSet populates a cache entry; failure is logged, never surfaced.
func (s *TransactionService) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		logging.FromContext(ctx).Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, raw, ttl); err != nil {
		logging.FromContext(ctx).Warn("cache write failed", "key", key, "error", err)
	}
}

// invalidateUserCache deletes the user's balance and list entries.
// Deletion is idempotent and failures are non-fatal: the next read within
// the TTL window may be stale, never wrong at the store.
func (s *TransactionService) invalidateUserCache(ctx context.Context, userID string) {
	log := logging.FromContext(ctx)

	for _, key := range []string{cache.UserBalanceKey(userID), cache.UserTransactionsKey(userID)} {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Warn("cache invalidation failed", "key", key, "error", err)
		}
	}
}
