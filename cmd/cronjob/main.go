package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"dues-tracker-backend/internal/config"
	"dues-tracker-backend/internal/jobs"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/repository/postgres"
	"dues-tracker-backend/internal/scheduler"
	"dues-tracker-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-overdue-reminders', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Dues Tracker Reminder Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	gateway := service.NewSlackGateway(cfg.Slack.WebhookURL, time.Duration(cfg.Slack.TimeoutSeconds)*time.Second)
	statsService := service.NewStatsService(store.MemberRepository, store.ExpenseRepository)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.MemberRepository, statsService, gateway, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler with the default reminder set
	registry := scheduler.NewRegistry()
	if err := jobRunner.SetupDefaultReminders(registry); err != nil {
		logger.Error("Failed to register default reminders", "error", err)
		log.Fatalf("Failed to register default reminders: %v", err)
	}

	// Start scheduler
	registry.Start()
	logger.Info("Reminder scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down reminder scheduler...")
	registry.Shutdown()
	logger.Info("Reminder scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "send-overdue-reminders":
		jobRunner.SendOverdueReminders()
	case "send-pending-reminders":
		jobRunner.SendPendingReminders()
	case "send-weekly-summary":
		jobRunner.SendWeeklySummary()
	case "send-deadline-reminder":
		jobRunner.SendDeadlineReminder()
	case "all":
		jobRunner.RunAllReminderJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - send-overdue-reminders\n")
		fmt.Printf("  - send-pending-reminders\n")
		fmt.Printf("  - send-weekly-summary\n")
		fmt.Printf("  - send-deadline-reminder\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
