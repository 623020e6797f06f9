// Package lms собирает основное HTTP-приложение обучающей платформы:
// хранилище, кеш, брокер сообщений, сервисы и маршруты.
package lms

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lms-backend/internal/cache"
	"github.com/magabrotheeeer/lms-backend/internal/config"
	"github.com/magabrotheeeer/lms-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/lms-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lms-backend/internal/migrations"
	"github.com/magabrotheeeer/lms-backend/internal/paymentprovider"
	authservice "github.com/magabrotheeeer/lms-backend/internal/services/auth"
	courseservice "github.com/magabrotheeeer/lms-backend/internal/services/course"
	lessonservice "github.com/magabrotheeeer/lms-backend/internal/services/lesson"
	paymentservice "github.com/magabrotheeeer/lms-backend/internal/services/payment"
	subservice "github.com/magabrotheeeer/lms-backend/internal/services/subscription"
	"github.com/magabrotheeeer/lms-backend/internal/storage/repository"
)

// App представляет основное приложение с HTTP-сервером и его зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New инициализирует приложение: подключает PostgreSQL, применяет миграции,
// поднимает Redis и RabbitMQ, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to init cache: %w", err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetCourseUpdateQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	notifier := rabbitmq.NewCourseUpdateNotifier(ch, "course.updated", logger)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.StripeSecretKey, cfg.StripeAPIURL)

	authService := authservice.NewAuthService(db, jwtMaker)
	courseService := courseservice.NewCourseService(db, cacheRedis, notifier, logger)
	lessonService := lessonservice.NewLessonService(db, logger)
	subscriptionService := subservice.NewSubscriptionService(db, logger)
	paymentService := paymentservice.NewPaymentService(db, providerClient, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, courseService, lessonService,
		subscriptionService, paymentService)

	server := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: server,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и завершает его работу при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server started", slog.String("addr", a.server.Addr))
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", slog.Any("err", err))
		}
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", slog.Any("err", err))
		}
		if err := a.db.DB.Close(); err != nil {
			a.logger.Error("failed to close storage", slog.Any("err", err))
		}

		return nil
	}
}
