package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrack/fintrack-api/internal/api"
	"github.com/fintrack/fintrack-api/internal/core/ports"
	"github.com/fintrack/fintrack-api/internal/core/service"
	"github.com/fintrack/fintrack-api/internal/infrastructure/config"
	"github.com/fintrack/fintrack-api/internal/infrastructure/db"
	"github.com/fintrack/fintrack-api/internal/infrastructure/db/memory"
	mongostore "github.com/fintrack/fintrack-api/internal/infrastructure/db/mongo"
	redisstore "github.com/fintrack/fintrack-api/internal/infrastructure/db/redis"
	"github.com/fintrack/fintrack-api/internal/infrastructure/queue"
	"github.com/fintrack/fintrack-api/pkg/logger"

	redisdriver "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage tiers ---
	// When Mongo is reachable the facade serves from it and fails over to the
	// in-memory tier on a mid-session outage. When it is unreachable at boot
	// the process starts degraded on the in-memory tier alone.
	memTxRepo := memory.NewTransactionRepository()

	var (
		mongoDB       *mongodriver.Database
		authRepo      ports.AuthRepository
		txRepo        ports.TransactionRepository
		ledgerBackend ports.LedgerBackend
	)

	client, database, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Warn().Err(err).Msg("mongodb unreachable, starting on the in-memory tier")
		authRepo = memory.NewAuthRepository()
		txRepo = memTxRepo
		ledgerBackend = memory.NewLedger()
	} else {
		mongoDB = database
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		mongoAuthRepo := mongostore.NewAuthRepository(database)
		mongoTxRepo := mongostore.NewTransactionRepository(database)
		if err := mongoAuthRepo.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msg("failed to ensure user indexes")
		}
		if err := mongoTxRepo.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msg("failed to ensure transaction indexes")
		}

		authRepo = mongoAuthRepo
		txRepo = db.NewFailover(mongoTxRepo, memTxRepo, log)

		if cfg.Ledger.Backend == "memory" {
			ledgerBackend = memory.NewLedger()
		} else {
			ledgerBackend = mongostore.NewLedgerRepository(database)
		}
	}

	// --- Redis (submission idempotency) ---
	var (
		rdb   *redisdriver.Client
		dedup service.DedupChecker = service.NoopDedup{}
	)
	if rc, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, idempotency keys disabled")
	} else {
		rdb = rc
		dedup = redisstore.NewDedupChecker(rc)
		defer func() { _ = rc.Close() }()
	}

	// --- Wallet pool ---
	pool := service.NewWalletPool(cfg.Wallet.Seed, cfg.Wallet.PoolSize)
	held, err := authRepo.AssignedWallets(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load assigned wallets")
	}
	pool.Seed(held)
	log.Info().Int("pool_size", cfg.Wallet.PoolSize).Int("remaining", pool.Remaining()).Msg("wallet pool ready")

	// --- Ledger mirror workers ---
	dispatcher := queue.NewDispatcher(cfg.Ledger.Workers, ledgerBackend, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(authRepo, pool, cfg.JWTSecret, 24*time.Hour)
	sequencer := service.NewSequencer(txRepo)
	txService := service.NewTransactionService(txRepo, sequencer, dedup, dispatcher, log)
	summaryService := service.NewSummaryService(txRepo, log)

	e := api.NewRouter(api.Deps{
		AuthService:        authService,
		TransactionService: txService,
		SummaryService:     summaryService,
		Ledger:             ledgerBackend,
		Mongo:              mongoDB,
		Redis:              rdb,
		JWTSecret:          cfg.JWTSecret,
		Log:                log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("fintrack api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
