package main

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/jacksonn455/wallet-service/internal/cache"
	"github.com/jacksonn455/wallet-service/internal/config"
	"github.com/jacksonn455/wallet-service/internal/events"
	"github.com/jacksonn455/wallet-service/internal/handler"
	"github.com/jacksonn455/wallet-service/internal/logging"
	"github.com/jacksonn455/wallet-service/internal/middleware"
	"github.com/jacksonn455/wallet-service/internal/repository"
	"github.com/jacksonn455/wallet-service/internal/service"
)

//go:embed openapi.yaml
var openapiSpec []byte

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("wallet-api", cfg.LogLevel, cfg.AppEnv)

	db, err := connectDB(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisCache, err := cache.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisCache.Close()
	slog.Info("redis connected", "addr", cfg.RedisAddr)

	publisher, err := events.Connect(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	if err != nil {
		slog.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()
	slog.Info("rabbitmq queue ready", "queue", cfg.RabbitMQQueue)

	transactionSvc := service.NewTransactionService(
		repository.NewTransactionRepository(db),
		redisCache,
		publisher,
	)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)

	authRequired := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec(openapiSpec))
	mux.Handle("POST /api/v1/transactions", authRequired(http.HandlerFunc(transactionHandler.Create)))
	mux.Handle("GET /api/v1/transactions", authRequired(http.HandlerFunc(transactionHandler.ListAll)))
	mux.Handle("GET /api/v1/transactions/user", authRequired(http.HandlerFunc(transactionHandler.ListMine)))
	mux.Handle("GET /api/v1/transactions/{id}", authRequired(http.HandlerFunc(transactionHandler.GetByID)))
	mux.Handle("GET /api/v1/balance", authRequired(http.HandlerFunc(transactionHandler.GetBalance)))

	var root http.Handler = mux
	root = middleware.Recovery(root)
	root = middleware.Logging(root)
	root = middleware.RequestID(root)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func connectDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connectDB: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeS) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeS) * time.Second)

	var pingErr error
	for i := range 30 {
		if pingErr = db.Ping(); pingErr == nil {
			return db, nil
		}
		slog.Info("waiting for database", "attempt", i+1)
		time.Sleep(time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("connectDB: gave up after 30 attempts: %w", pingErr)
}
