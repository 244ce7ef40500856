package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "dues-tracker-backend/internal/api/http"
	"dues-tracker-backend/internal/config"
	"dues-tracker-backend/internal/jobs"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/repository/postgres"
	"dues-tracker-backend/internal/scheduler"
	"dues-tracker-backend/internal/security"
	"dues-tracker-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Dues Tracker Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Notification Gateway
	gateway := service.NewSlackGateway(cfg.Slack.WebhookURL, time.Duration(cfg.Slack.TimeoutSeconds)*time.Second)
	if cfg.Slack.WebhookURL == "" {
		logger.Warn("Slack webhook URL not configured, notifications will fail")
	}

	// Initialize background notification workers
	notifierCtx, cancelNotifier := context.WithCancel(context.Background())
	defer cancelNotifier()
	notifier := service.NewNotifier(4, 64)
	notifier.Start(notifierCtx)

	// Initialize external providers
	provider := service.NewSquareProvider(cfg.Square.ApplicationID, cfg.Square.AccessToken, cfg.Square.LocationID, cfg.Square.Environment)
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Services
	memberSvc := service.NewMemberService(store.MemberRepository, gateway, notifier)
	paymentSvc := service.NewPaymentService(store.MemberRepository, store.TransactionRepository, provider, gateway, emailSvc, notifier)
	expenseSvc := service.NewExpenseService(store.ExpenseRepository, store.MemberRepository, gateway, notifier)
	statsSvc := service.NewStatsService(store.MemberRepository, store.ExpenseRepository)
	authSvc := service.NewAuthService(store.MemberRepository, tokenManager)

	// Initialize Scheduler with the default reminder set
	registry := scheduler.NewRegistry()
	runner := jobs.NewJobRunner(store.MemberRepository, statsSvc, gateway, cfg)
	if err := runner.SetupDefaultReminders(registry); err != nil {
		logger.Error("Failed to register default reminders", "error", err)
		log.Fatalf("Failed to register default reminders: %v", err)
	}
	registry.Start()
	defer registry.Shutdown()

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:         authSvc,
		Members:      memberSvc,
		Payments:     paymentSvc,
		Expenses:     expenseSvc,
		Stats:        statsSvc,
		Gateway:      gateway,
		Registry:     registry,
		TokenManager: tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	notifier.Stop()
	logger.Info("Shutdown complete")
}
