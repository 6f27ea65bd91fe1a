package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/finledger/internal/adapter/http"
	"github.com/iho/finledger/internal/adapter/http/handler"
	"github.com/iho/finledger/internal/adapter/http/middleware"
	"github.com/iho/finledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/finledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finledger/internal/adapter/repository/redis"
	"github.com/iho/finledger/internal/app"
	"github.com/iho/finledger/internal/infrastructure/config"
	"github.com/iho/finledger/internal/infrastructure/eventpublisher"
	"github.com/iho/finledger/internal/infrastructure/logger"
	"github.com/iho/finledger/internal/infrastructure/metrics"
	"github.com/iho/finledger/internal/infrastructure/postgres"
	"github.com/iho/finledger/internal/infrastructure/redis"
	"github.com/iho/finledger/internal/usecase"
)

const serviceName = "finledger"

// limiterMaxIdle is how long a client's rate limiter survives without requests.
const limiterMaxIdle = 10 * time.Minute

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: serviceName})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, prometheus.DefaultRegisterer, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, log zerolog.Logger) error {
	m := metrics.New(reg)

	var (
		repos  app.Repositories
		checks []handler.HealthCheck
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.RunMigrations {
			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
				return err
			}
		}

		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		repos = app.PostgresRepositories(pool, app.PostgresOptions{
			LockTimeout: cfg.DatabaseLockWait,
			Retry:       postgresRepo.RetryConfig{MaxRetries: cfg.DatabaseRetries},
			OnRetry:     m.DBRetry,
		}, log)
		checks = append(checks, handler.HealthCheck{Name: "postgres", Check: pool.Ping})
	default:
		store := memory.NewStore()
		if err := app.SeedReferenceData(ctx, store, time.Now().UTC()); err != nil {
			return err
		}
		repos = app.MemoryRepositories(store)
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	}

	var (
		idempotencyStore usecase.IdempotencyStore
		publisher        eventpublisher.Publisher = eventpublisher.NewLogPublisher(log)
	)

	if cfg.RedisEnabled {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL, redis.WithPoolSize(cfg.RedisPoolSize))
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		repos.FiscalYears = usecase.NewCachedFiscalYearRepository(
			repos.FiscalYears, redisRepo.NewCache(redisClient), log).WithTTL(cfg.CacheTTL)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		publisher = eventpublisher.NewRedisPublisher(redisClient, eventpublisher.DefaultChannelPrefix)
		checks = append(checks, redisCheck(redisClient))
	}

	uc := app.NewUseCases(repos, postgresRepo.NewULIDGenerator(), m, log)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:         handler.NewAccountHandler(uc.Accounts),
		JournalHandler:         handler.NewJournalHandler(uc.Journal),
		LedgerEntryHandler:     handler.NewLedgerEntryHandler(uc.LedgerEntries),
		TransactionHandler:     handler.NewTransactionHandler(uc.Transactions),
		BalanceSheetHandler:    handler.NewBalanceSheetHandler(uc.BalanceSheets),
		IncomeStatementHandler: handler.NewIncomeStatementHandler(uc.IncomeStatements),
		LedgerHandler:          handler.NewLedgerHandler(uc.Ledger, uc.Reconciliation),
		HealthHandler:          handler.NewHealthHandler(checks...),
		Logger:                 log,
		Metrics:                m,
		MetricsHandler:         promhttp.Handler(),
		RateLimiter:            rateLimiter,
		CORSAllowedOrigins:     cfg.CORSAllowedOrigins,
		IdempotencyStore:       idempotencyStore,
		IdempotencyTTL:         cfg.IdempotencyTTL,
	})

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	outbox := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: repos.Outbox,
		Publisher:  publisher,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := outbox.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()
	if rateLimiter != nil {
		go cleanupLimiters(workerCtx, rateLimiter, log)
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")
	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func redisCheck(client *goredis.Client) handler.HealthCheck {
	return handler.HealthCheck{
		Name: "redis",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, log zerolog.Logger) {
	ticker := time.NewTicker(limiterMaxIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.CleanupLimiters(limiterMaxIdle); n > 0 {
				log.Debug().Int("removed", n).Msg("rate limiters cleaned up")
			}
		}
	}
}
