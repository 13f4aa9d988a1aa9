package main

// @title           Messaging Service API
// @version         1.0
// @description     Direct and group chat messaging with realtime websocket delivery
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"messaging-service/internal/adapters/kafka"
	"messaging-service/internal/adapters/storage"
	"messaging-service/internal/api/handlers"
	"messaging-service/internal/api/routes"
	"messaging-service/internal/config"
	"messaging-service/internal/database"
	"messaging-service/internal/services"
	"messaging-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, ServiceName: "messaging-service"})
	log := logger.L()
	log.Info().Msg("starting messaging server")

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	deps := routes.Dependencies{DB: db, Config: cfg}

	// Redis backs presence, rate limiting and the profile cache. Without it
	// the server still serves messages.
	redisClient, err := database.NewRedisConnection(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, presence and rate limiting disabled")
	} else {
		defer redisClient.Close()
		deps.Redis = services.NewRedisService(redisClient)
	}

	var notifications *services.NotificationService
	if cfg.Kafka.Enabled() {
		publisher, err := kafka.NewPublisher(&cfg.Kafka)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create notification publisher")
		}
		notifications = services.NewNotificationService(publisher)
		deps.Notifier = notifications
	} else {
		log.Info().Msg("no kafka brokers configured, notifications disabled")
	}

	if cfg.Storage.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		store, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise object storage")
		}
		deps.Uploader = handlers.Uploader(store)
	}

	router := routes.NewRouter(deps)
	router.SetupRoutes()

	for _, hub := range router.Hubs() {
		go hub.Run()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("address", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	for _, hub := range router.Hubs() {
		hub.Stop()
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	if notifications != nil {
		if err := notifications.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close notification publisher")
		}
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("server stopped")
}
