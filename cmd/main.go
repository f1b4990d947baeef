package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/Dosada05/team-manager/config"
	"github.com/Dosada05/team-manager/db"
	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/feed"
	"github.com/Dosada05/team-manager/repositories"
	api "github.com/Dosada05/team-manager/routes"
	"github.com/Dosada05/team-manager/services"
	"github.com/Dosada05/team-manager/storage"
)

// @title Team Manager API
// @version 1.0
// @description Тренировки, матчи, заявки на отпуск и галерея спортивной команды.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(ctx, dbConn); err != nil {
		return err
	}

	// Redis нужен только для отзыва токенов при logout
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_URL is not set, logout will not revoke tokens")
	}

	// Инициализация загрузчика файлов
	var uploader storage.FileUploader
	if cfg.S3.Enabled() {
		uploader, err = storage.NewS3Uploader(ctx, storage.S3UploaderConfig{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			BucketName:      cfg.S3.BucketName,
			PublicBaseURL:   cfg.S3.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize S3 uploader: %w", err)
		}
		logger.Info("S3 uploader initialized", slog.String("bucket", cfg.S3.BucketName))
	} else {
		logger.Warn("S3_BUCKET is not set, file uploads are disabled")
	}

	// Лента событий: websocket-хаб и, если настроен, RabbitMQ
	hub := feed.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)
	logger.Info("feed hub started")

	publishers := events.Multi{hub}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to amqp: %w", err)
		}
		defer func() {
			if err := amqpPublisher.Close(); err != nil {
				logger.Error("failed to close amqp publisher", slog.Any("error", err))
			}
		}()
		publishers = append(publishers, amqpPublisher)
		logger.Info("amqp publisher initialized", slog.String("exchange", cfg.AMQPExchange))
	}

	repos := repositories.NewRepositories(dbConn, rdb)
	svc := services.NewServices(repos, services.Options{
		JWTSecret: cfg.JWTSecretKey,
		TokenTTL:  cfg.TokenTTL,
		Uploader:  uploader,
		Publisher: publishers,
		Logger:    logger,
	})
	logger.Info("services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, svc, hub, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}

	return nil
}
