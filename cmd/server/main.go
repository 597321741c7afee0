package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "prorentals-backend/internal/api/http"
	"prorentals-backend/internal/config"
	"prorentals-backend/internal/gateway/asaas"
	"prorentals-backend/internal/gateway/lalamove"
	"prorentals-backend/internal/logger"
	"prorentals-backend/internal/repository/postgres"
	"prorentals-backend/internal/security"
	"prorentals-backend/internal/service"
	"prorentals-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Secrets may come from a local .env in development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Pro Rentals Back Office...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Storage
	localStorage, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize photo storage", "error", err)
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}
	logger.Info("Photo storage ready", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Gateway Clients
	asaasClient := asaas.NewClient(cfg.Asaas.BaseURL, cfg.Asaas.APIKey)
	lalamoveClient := lalamove.NewClient(cfg.Lalamove.BaseURL, cfg.Lalamove.APIKey, cfg.Lalamove.APISecret, cfg.Lalamove.Market)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	photoSvc := service.NewPhotoService(localStorage, cfg.Storage.MaxPhotos, cfg.Storage.MaxFileSizeMB)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	billingSvc := service.NewBillingService(
		store.DamageReportRepository,
		store.AgentRepository,
		store.NotificationRepository,
		emailSvc,
		asaasClient,
		cfg.Billing.AutoBillMaxTotal,
		cfg.Billing.AutoBillMaxAdjustment,
	)
	reportSvc := service.NewDamageReportService(
		store.DamageReportRepository,
		store.AgentRepository,
		store.NotificationRepository,
		store.InspectionRepository,
		emailSvc,
		billingSvc,
		cfg.Billing.CustomerNotifyMinTotal,
	)
	recordSvc := service.NewDamageRecordService(store.DamageRecordRepository, photoSvc)
	webhookSvc := service.NewWebhookService(
		store.WebhookEventRepository,
		store.DamageReportRepository,
		store.NotificationRepository,
	)
	authSvc := service.NewAuthService(store.AgentRepository, tokenManager)

	// Initialize HTTP surface
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:        tokenManager,
		Reports:       httpapi.NewDamageReportHandler(reportSvc),
		Damages:       httpapi.NewDamageHandler(recordSvc),
		Photos:        httpapi.NewPhotoHandler(photoSvc),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
		Asaas:         httpapi.NewAsaasHandler(asaasClient),
		Lalamove:      httpapi.NewLalamoveHandler(lalamoveClient),
		Webhooks:      httpapi.NewWebhookHandler(webhookSvc, cfg.Asaas.WebhookToken, cfg.Lalamove.WebhookSecret),
		Auth:          httpapi.NewAuthHandler(authSvc),
		UploadDir:     cfg.Storage.UploadDir,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
