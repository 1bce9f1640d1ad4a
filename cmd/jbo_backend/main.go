package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/internal/adapters/marketrates"
	portsrepo "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/handlers"
	"github.com/SscSPs/jewel_backoffice_app/internal/jobs"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/SscSPs/jewel_backoffice_app/internal/platform/config"
	"github.com/SscSPs/jewel_backoffice_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/jewel_backoffice_app/internal/repositories/memory"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils"
	"github.com/SscSPs/jewel_backoffice_app/pkg/database"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

// @title Jewel Back-office API
// @version 1.0
// @description Gold and silver buy/sell transactions, invoices, cash-flow ledger and reports for a jewellery shop.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.StorageDriver, err)
	}
	defer closeStorage()

	rateSource, err := marketrates.NewSource(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure market rate source %q: %w", cfg.MarketRatesProvider, err)
	}
	if rateSource == nil {
		logger.Info("No market rate source configured")
	} else {
		logger.Info("Market rate source configured", slog.String("source", rateSource.Name()))
	}

	serviceContainer, err := services.NewServiceContainer(cfg, repos, rateSource)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PostHogAPIKey, logger)
	defer posthogClient.Close()

	var prewarm portssvc.MarketRateSvc
	if rateSource != nil {
		prewarm = serviceContainer.MarketRates
	}
	scheduler := jobs.NewScheduler(logger, serviceContainer.Ledger, prewarm, cfg.BusinessLocation)
	if err := scheduler.Schedule(cfg.ReconcileSchedule, cfg.RatesRefreshSchedule); err != nil {
		return fmt.Errorf("failed to schedule background jobs: %w", err)
	}
	scheduler.Start()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("server shutdown failed: %w", err)
	}
	scheduler.Stop(shutdownCtx)
	logger.Info("Server stopped")
	return runErr
}

// setupStorage builds the repositories for the configured driver. The returned func releases them.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
