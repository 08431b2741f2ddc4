package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	_ "github.com/lib/pq"

	"leadhub-backend/internal/config"
	"leadhub-backend/internal/jobs"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/repository/postgres"
	"leadhub-backend/internal/scheduler"
	"leadhub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'check-lead-no-order', 'all')")
	dryRun := flag.Bool("dry-run", false, "Report intended notifications without writing or sending anything")
	daysFlag := flag.String("days", "", "Comma-separated deadline offsets for check-task-deadlines, overriding the configured set (e.g., '1,3,7')")
	flag.Parse()

	deadlineDays, err := parseDays(*daysFlag)
	if err != nil {
		log.Fatalf("Invalid -days value %q: %v", *daysFlag, err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LeadHub Cronjob Runner...", "log_level", cfg.Log.Level)

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
	emailService := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)
	notificationService := service.NewNotificationService(
		store.NotificationRepository,
		store.OrganisationRepository,
	)

	jobServices := &jobs.Services{
		Email:        emailService,
		Notification: notificationService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)
	jobRunner.SetDryRun(*dryRun)

	// Check if running a single job
	if *runOnce != "" {
		if deadlineDays == nil {
			deadlineDays = cfg.Notifications.DeadlineDays
		}
		logger.Info("Running job once", "job", *runOnce, "dry_run", *dryRun)
		runJobOnce(jobRunner, *runOnce, deadlineDays)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// parseDays parses the comma-separated -days override; empty means "use the
// configured set".
func parseDays(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("deadline offset must be positive, got %d", d)
		}
		days = append(days, d)
	}
	return days, nil
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string, deadlineDays []int) {
	switch jobName {
	case "check-lead-no-order":
		jobRunner.CheckLeadNoOrder()
	case "check-order-day":
		jobRunner.CheckOrderDay()
	case "check-task-deadlines":
		jobRunner.CheckTaskDeadlines(deadlineDays...)
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - check-lead-no-order\n")
		fmt.Printf("  - check-order-day\n")
		fmt.Printf("  - check-task-deadlines\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
