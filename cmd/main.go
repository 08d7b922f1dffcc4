package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shaktiaryan/wildlife-gallery/internal/api"
	"github.com/shaktiaryan/wildlife-gallery/internal/cache"
	"github.com/shaktiaryan/wildlife-gallery/internal/config"
	"github.com/shaktiaryan/wildlife-gallery/internal/events"
	"github.com/shaktiaryan/wildlife-gallery/internal/repository"
	"github.com/shaktiaryan/wildlife-gallery/internal/seed"
	"github.com/shaktiaryan/wildlife-gallery/internal/service"
	"github.com/shaktiaryan/wildlife-gallery/internal/session"
	"github.com/shaktiaryan/wildlife-gallery/migrations"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func connectDB(cfg config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				logger.Info().Str("database", cfg.DBName).Msg("Connected to DB")
				return db, nil
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to DB, retrying")
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %w",
		cfg.DBName, cfg.DBHost, cfg.DBPort, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	db, err := connectDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Database unavailable")
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := migrations.AutoMigrate(3, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	// Redis is an accelerator, not a dependency. Without it sessions
	// fall back to process memory and images are served from the DB.
	redisUp := false
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, using in-memory sessions and no image cache")
		} else {
			redisUp = true
		}
		cancel()
	}

	var sessionStore session.Store
	if redisUp {
		sessionStore = session.NewRedisStore(rdb)
	} else {
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessionStore, cfg.ForceHTTPS)

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, events.Topic)
	publisher := events.NewPublisher(kafkaWriter)

	userRepo := repository.NewUserRepository(db)
	creatureRepo := repository.NewCreatureRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	imageRepo := repository.NewImageRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	var imageCache service.ImageCache
	if redisUp {
		imageCache = cache.NewImageCache(rdb)
	}

	authService := service.NewAuthService(userRepo, cfg.SessionSecret)
	userService := service.NewUserService(userRepo)
	creatureService := service.NewCreatureService(creatureRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo, creatureRepo)
	imageService := service.NewImageService(imageRepo, imageCache)
	activityService := service.NewActivityService(activityRepo, publisher)
	chatService := service.NewChatService(creatureRepo, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	seeder := seed.NewSeeder(db, creatureRepo)

	mw := api.NewMiddleware(sessions, userService, activityService)

	var redisForHealth *redis.Client
	if redisUp {
		redisForHealth = rdb
	}

	handlers := api.Handlers{
		Auth:     api.NewAuthHandler(authService, activityService),
		Gallery:  api.NewGalleryHandler(creatureService, feedbackService),
		Feedback: api.NewFeedbackHandler(feedbackService, activityService),
		Image:    api.NewImageHandler(imageService, cfg.PlaceholderURL),
		Chat:     api.NewChatHandler(chatService),
		Admin: api.NewAdminHandler(userService, creatureService, feedbackService,
			imageService, activityService, creatureRepo, imageRepo, seeder, db, redisForHealth),
		Health: api.NewHealthHandler(db, redisForHealth),
		APIV1:  api.NewAPIV1Handler(creatureService, feedbackService),
	}

	e := echo.New()
	e.HideBanner = true

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	api.RegisterRoutes(e, mw, handlers, cfg.SessionSecret)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Info().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	if err := publisher.Close(); err != nil {
		logger.Error().Err(err).Msg("Kafka writer close failed")
	}
	if err := rdb.Close(); err != nil {
		logger.Error().Err(err).Msg("Redis close failed")
	}
	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("Database close failed")
	}
}
