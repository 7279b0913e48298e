package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/roundlabs/quadmatch/internal/adapter"
	"github.com/roundlabs/quadmatch/internal/api/middleware"
	"github.com/roundlabs/quadmatch/internal/api/rest"
	"github.com/roundlabs/quadmatch/internal/api/server"
	"github.com/roundlabs/quadmatch/internal/config"
	"github.com/roundlabs/quadmatch/internal/domain"
	"github.com/roundlabs/quadmatch/internal/logger"
	"github.com/roundlabs/quadmatch/internal/providers/graph"
	"github.com/roundlabs/quadmatch/internal/providers/jetstream"
	"github.com/roundlabs/quadmatch/internal/providers/pricing"
	"github.com/roundlabs/quadmatch/internal/ratelimit"
	"github.com/roundlabs/quadmatch/internal/recompute"
	"github.com/roundlabs/quadmatch/internal/scheduler"
	"github.com/roundlabs/quadmatch/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.Load(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "quadmatch-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting quadmatch matching engine")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Ensure schema is up to date
	if err := db.AutoMigrate(store.AllModels()...); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(30 * time.Second)

	// Connect to Redis (response cache + distributed rate limiter backend)
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WarnCtx(ctx, "Redis unreachable, falling back to local rate limiting and uncached responses", zap.Error(err))
	}

	// Rate-limit proxy fronting the subgraph and the price oracle
	limiter, err := ratelimit.NewProxy(cfg.RateLimiter, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}
	defer func() {
		if err := limiter.Close(); err != nil {
			logger.Warn("Failed to close rate limiter", zap.Error(err))
		}
	}()

	// Upstream providers
	graphClient := graph.NewClient(httpClient, jsonAdapter, clock, limiter, cfg.Subgraph.URLs)
	pricingClient := pricing.NewClient(httpClient, limiter, cfg.Pricing.BaseURL, cfg.Pricing.APIKey, cfg.Pricing.Platforms)

	// Connect to NATS JetStream for recompute notifications
	if cfg.NATS.URL == "" {
		logger.FatalCtx(ctx, "nats.url is required")
	}
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))

	// Recompute engine
	recomputer := recompute.NewEngine(graphClient, pricingClient, dataStore, publisher, clock)

	// Recurring recompute scheduler
	chains := make([]domain.ChainID, 0, len(cfg.Scheduler.Chains))
	for _, raw := range cfg.Scheduler.Chains {
		chainID, ok := domain.ParseChainID(raw)
		if !ok {
			logger.FatalCtx(ctx, "Unsupported chain id in scheduler config", zap.String("chain_id", raw))
		}
		chains = append(chains, chainID)
	}
	sched := scheduler.NewScheduler(scheduler.Config{
		Interval:         cfg.Scheduler.Interval,
		Chains:           chains,
		RoundConcurrency: cfg.Scheduler.RoundConcurrency,
	}, graphClient, recomputer, clock)

	errCh := make(chan error, 2)
	if len(chains) > 0 {
		go func() {
			if err := sched.Start(ctx); err != nil {
				errCh <- fmt.Errorf("scheduler: %w", err)
			}
		}()
	} else {
		logger.WarnCtx(ctx, "No chains configured, recurring recompute disabled")
	}

	// HTTP server
	handler := rest.NewHandler(recomputer, dataStore, redisClient, jsonAdapter, cfg.Redis.CacheTTL)
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, handler, middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	})

	go func() {
		if err := srv.Start(); err != nil {
			errCh <- fmt.Errorf("server: %w", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err)
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down...")

	if err := sched.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, fmt.Errorf("failed to stop scheduler: %w", err))
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("Matching engine stopped")
}
