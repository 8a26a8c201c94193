package main

import (
	"fmt"
	"log/slog"
	"time"

	authhandler "github.com/expense-exterminator/backend/internal/domain/auth/handler"
	authrepo "github.com/expense-exterminator/backend/internal/domain/auth/repository"
	authservice "github.com/expense-exterminator/backend/internal/domain/auth/service"
	"github.com/expense-exterminator/backend/internal/domain/categories"
	"github.com/expense-exterminator/backend/internal/domain/categorization"
	"github.com/expense-exterminator/backend/internal/domain/extraction/acquirer"
	exthandler "github.com/expense-exterminator/backend/internal/domain/extraction/handler"
	"github.com/expense-exterminator/backend/internal/domain/extraction/grammar"
	extservice "github.com/expense-exterminator/backend/internal/domain/extraction/service"
	"github.com/expense-exterminator/backend/internal/domain/preferences"
	txhandler "github.com/expense-exterminator/backend/internal/domain/transactions/handler"
	txrepo "github.com/expense-exterminator/backend/internal/domain/transactions/repository"
	txservice "github.com/expense-exterminator/backend/internal/domain/transactions/service"
	"github.com/expense-exterminator/backend/internal/server"
	"github.com/expense-exterminator/backend/pkg/config"
	"github.com/expense-exterminator/backend/pkg/cron"
	"github.com/expense-exterminator/backend/pkg/db"
	"github.com/expense-exterminator/backend/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	AuthRepo         authrepo.AuthRepository
	TransactionsRepo txrepo.TransactionRepository
	CategoriesRepo   categories.Repository
	PreferencesRepo  preferences.Repository

	// Services
	TokenManager          *authservice.TokenManager
	AuthService           *authservice.AuthService
	CategorizationService *categorization.Service
	TransactionsService   *txservice.Service
	ExtractionService     *extservice.Service

	// Handlers
	Handlers server.Handlers

	// Upload staging and background jobs
	UploadStore *storage.Local
	Scheduler   *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	deps.initRepositories()
	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}
	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// initRepositories initializes the repository layer
func (d *Dependencies) initRepositories() {
	d.AuthRepo = authrepo.NewPostgresAuthRepository(d.DB.Pool)
	d.TransactionsRepo = txrepo.NewPostgresTransactionRepository(d.DB.Pool)
	d.CategoriesRepo = categories.NewPostgresRepository(d.DB.Pool)
	d.PreferencesRepo = preferences.NewPostgresRepository(d.DB.Pool)
	d.Logger.Info("repositories initialized")
}

// initServices initializes the service layer
func (d *Dependencies) initServices() error {
	if d.Config.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	tokenTTL := time.Duration(d.Config.Auth.TokenTTLHours) * time.Hour
	d.TokenManager = authservice.NewTokenManager(d.Config.Auth.JWTSecret, tokenTTL)
	d.AuthService = authservice.NewAuthService(d.AuthRepo, d.TokenManager, d.Config.Auth.BCryptCost, d.Logger)

	d.CategorizationService = categorization.NewService()
	d.TransactionsService = txservice.NewService(d.TransactionsRepo, d.CategorizationService, d.Logger)

	acq := acquirer.NewWithSettings(d.Config.OCR.Language, d.Config.OCR.DPI)
	d.ExtractionService = extservice.NewService(grammar.NewRegistry(), acq, d.Logger)

	store, err := storage.NewLocal(d.Config.Upload.Dir)
	if err != nil {
		return err
	}
	d.UploadStore = store

	d.Scheduler = cron.NewScheduler(
		d.UploadStore,
		d.Config.Upload.SweepSchedule,
		time.Duration(d.Config.Upload.MaxAgeHours)*time.Hour,
		d.Logger,
	)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes the handler layer
func (d *Dependencies) initHandlers() {
	d.Handlers = server.Handlers{
		Auth: authhandler.NewAuthHandler(d.AuthService),
		Extraction: exthandler.NewExtractionHandler(
			d.ExtractionService,
			d.TransactionsService,
			d.PreferencesRepo,
			d.UploadStore,
			d.Config.Upload.MaxSizeBytes,
			d.Logger,
		),
		Transactions: txhandler.NewTransactionHandler(d.TransactionsService, d.PreferencesRepo),
		Categories:   categories.NewHandler(d.CategoriesRepo),
		Preferences:  preferences.NewHandler(d.PreferencesRepo),
	}
	d.Logger.Info("handlers initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
