package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	api "vibe-backend/internal/api/http"
	"vibe-backend/internal/config"
	"vibe-backend/internal/email"
	"vibe-backend/internal/logger"
	"vibe-backend/internal/repository/postgres"
	"vibe-backend/internal/security"
	"vibe-backend/internal/service"

	_ "github.com/lib/pq"
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
	logger.Info("Starting Vibe backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

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

	// Initialize Email dispatch
	sender := email.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	dispatcher := email.NewDispatcher(sender, cfg.Email.Workers, cfg.Email.QueueSize, cfg.Email.MaxRetries)
	dispatcher.Start(context.Background())

	// Initialize Services
	invitationSvc := service.NewInvitationService(
		store.UserRepository,
		store.InvitationRepository,
		store.RegistrationRepository,
		dispatcher,
		tokenManager,
		time.Duration(cfg.Invitation.ExpiryHours)*time.Hour,
		cfg.Email.AppURL,
	)
	networkSvc := service.NewNetworkService(store.UserRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(
		store.UserRepository,
		cfg.Radar.RadiusKm,
		time.Duration(cfg.Radar.FreshnessMinutes)*time.Minute,
	)

	// Initialize HTTP handlers
	router := api.NewRouter(
		tokenManager,
		api.NewAuthHandler(authSvc),
		api.NewInvitationHandler(invitationSvc),
		api.NewNetworkHandler(networkSvc),
		api.NewUserHandler(userSvc),
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
