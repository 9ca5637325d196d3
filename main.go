package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CampusVoice/campus-voice-backend/config"
	"github.com/CampusVoice/campus-voice-backend/db"
	"github.com/CampusVoice/campus-voice-backend/handlers"
	"github.com/CampusVoice/campus-voice-backend/internal/store/postgres"
	"github.com/CampusVoice/campus-voice-backend/logger"
	"github.com/CampusVoice/campus-voice-backend/middleware"
	"github.com/CampusVoice/campus-voice-backend/router"
	"github.com/CampusVoice/campus-voice-backend/services"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/supabase-community/supabase-go"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	if life, err := time.ParseDuration(cfg.Database.ConnMaxLife); err == nil {
		poolConfig.MaxConnLifetime = life
	}
	if cfg.IsProduction() {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis client
	redisOptions := &redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			ServerName: cfg.Redis.Address,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() { _ = redisClient.Close() }()

	// Identity provider
	supabaseClient, err := supabase.NewClient(
		cfg.ExternalServices.SupabaseURL,
		cfg.ExternalServices.SupabaseAnonKey,
		&supabase.ClientOptions{},
	)
	if err != nil {
		log.Fatalf("Failed to create supabase client: %v", err)
	}

	jwtValidator, err := middleware.NewJWTValidator(cfg)
	if err != nil {
		log.Fatalf("Failed to create JWT validator: %v", err)
	}

	// Services
	feedbackStore := postgres.NewFeedbackStore(pool)
	notificationService := services.NewNotificationService(&cfg.Email, cfg.Server.FrontendURL)
	feedbackService := services.NewFeedbackService(feedbackStore, notificationService)
	authService := services.NewAuthService(services.NewSupabaseIdentity(supabaseClient))
	rateLimitService := services.NewRateLimitService(redisClient)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	// Router
	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		JWTValidator:    jwtValidator,
		RateLimiter:     rateLimitService,
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackService),
		AdminHandler:    handlers.NewAdminHandler(feedbackService),
		AuthHandler:     handlers.NewAuthHandler(authService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		Logger:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
