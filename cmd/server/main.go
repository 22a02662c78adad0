package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "eventhub-backend/internal/api/grpc"
	httpapi "eventhub-backend/internal/api/http"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/repository/postgres"
	"eventhub-backend/internal/service"
	"eventhub-backend/internal/stats"

	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

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
	logger.Info("Starting Event Hub backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http_address", cfg.GetServerAddress(), "grpc_address", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Stats configuration", "base_url", cfg.Stats.BaseURL, "app", cfg.Stats.App)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
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

	if cfg.Database.MigrateOnStart {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	statsClient := stats.NewClient(cfg.Stats.BaseURL, cfg.StatsTimeout())

	var notifier service.Notifier
	if cfg.NotificationsEnabled() {
		logger.Info("Email notifications enabled", "from", cfg.Notifications.FromEmail)
		notifier = service.NewEmailNotifier(
			cfg.Notifications.SendGridAPIKey,
			cfg.Notifications.APIHost,
			cfg.Notifications.FromEmail,
			cfg.Notifications.FromName,
			store.UserRepository,
		)
	} else {
		logger.Info("Email notifications disabled")
		notifier = service.NewNoopNotifier()
	}

	// Initialize Services
	participationSvc := service.NewParticipationService(
		store.UserRepository,
		store.EventRepository,
		store.ParticipationRepository,
		notifier,
	)
	ratingSvc := service.NewRatingService(store.UserRepository, store.EventRepository, store.RatingRepository)
	eventSvc := service.NewEventService(
		store.EventRepository,
		store.ParticipationRepository,
		store.RatingRepository,
		statsClient,
		cfg.Stats.App,
	)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(
		httpapi.NewEventHandler(eventSvc, ratingSvc),
		httpapi.NewRequestHandler(participationSvc),
		httpapi.NewRatingHandler(ratingSvc),
	)
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Set up gRPC health server
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checker := grpcapi.NewHealthChecker(store)
	go checker.Run(ctx, 10*time.Second)
	grpcServer := grpcapi.NewServer(checker)

	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	go func() {
		logger.Info("gRPC health server listening", "address", cfg.GetGRPCAddress())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
		}
	}()

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down servers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("Servers stopped. Goodbye!")
}
