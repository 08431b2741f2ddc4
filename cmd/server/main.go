package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "leadhub-backend/internal/api/http"
	"leadhub-backend/internal/config"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/repository/postgres"
	"leadhub-backend/internal/security"
	"leadhub-backend/internal/service"
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
	logger.Info("Starting LeadHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	activitySvc := service.NewActivityService(store.ActivityRepository, store.AgentRepository)
	notificationSvc := service.NewNotificationService(store.NotificationRepository, store.OrganisationRepository)
	authSvc := service.NewAuthService(
		store.UserRepository,
		store.OrganisationRepository,
		store.OrganisorRepository,
		store.AgentRepository,
		tokenManager,
		emailSvc,
	)
	organisorSvc := service.NewOrganisorService(
		store.OrganisorRepository,
		store.OrganisationRepository,
		store.UserRepository,
		store.AgentRepository,
	)
	agentSvc := service.NewAgentService(
		store.AgentRepository,
		store.UserRepository,
		activitySvc,
		emailSvc,
	)
	leadSvc := service.NewLeadService(
		store.LeadRepository,
		store.CategoryRepository,
		store.AgentRepository,
		activitySvc,
	)
	taskSvc := service.NewTaskService(
		store.TaskRepository,
		store.UserRepository,
		store.AgentRepository,
		store.OrganisationRepository,
		activitySvc,
		notificationSvc,
	)
	orderSvc := service.NewOrderService(
		store.OrderRepository,
		store.LeadRepository,
		store.AgentRepository,
		activitySvc,
	)
	productSvc := service.NewProductService(
		store.ProductRepository,
		activitySvc,
		notificationSvc,
	)

	// Build the router
	router := httpapi.NewRouter(httpapi.Services{
		Tokens:        tokenManager,
		Auth:          authSvc,
		Organisors:    organisorSvc,
		Agents:        agentSvc,
		Leads:         leadSvc,
		Tasks:         taskSvc,
		Orders:        orderSvc,
		Products:      productSvc,
		Activity:      activitySvc,
		Notifications: notificationSvc,
	})

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
