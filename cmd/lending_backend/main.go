package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/microlend_ledger/internal/adapters/database/filestore"
	"github.com/SscSPs/microlend_ledger/internal/adapters/database/firestore"
	"github.com/SscSPs/microlend_ledger/internal/adapters/database/pgsql"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/microlend_ledger/internal/core/services"
	"github.com/SscSPs/microlend_ledger/internal/handlers"
	"github.com/SscSPs/microlend_ledger/internal/jobs"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/SscSPs/microlend_ledger/pkg/config"
	"github.com/SscSPs/microlend_ledger/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Microlend Ledger API
// @version 1.0
// @description Loan book, ledger, payroll and back-office API for a microfinance office.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey ActorHeader
// @in header
// @name X-Actor
// @description Name of the acting collector.

// @security ActorHeader
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("Error closing store", slog.String("error", cerr.Error()))
		}
	}()

	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	serviceContainer := services.NewServiceContainer(st.Repositories(), cfg.CurrencySymbol)

	if cfg.BackupSchedule != "" {
		backups := jobs.NewBackupScheduler(serviceContainer.Snapshot, cfg.BackupDir, cfg.BackupSchedule, cfg.BackupKeep, logger)
		if err := backups.Start(); err != nil {
			return fmt.Errorf("failed to start backup scheduler: %w", err)
		}
		defer backups.Stop()
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(limiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreBackend))
	return r.Run(":" + cfg.Port)
}

// openStore connects the configured persistence backend.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return nil, err
		}
		return pgsql.NewStore(dbPool), nil

	case config.BackendFirestore:
		client, err := database.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, err
		}
		st, err := firestore.NewStore(ctx, client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		logger.Info("Firestore client established.", slog.String("project", cfg.FirestoreProjectID))
		return st, nil

	default:
		st, err := filestore.Open(cfg.DataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		logger.Info("Using data file", slog.String("path", cfg.DataFile))
		return st, nil
	}
}
