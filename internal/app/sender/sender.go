// Package sender собирает приложение рассылки писем: читает события
// об обновлении курсов из RabbitMQ и уведомляет подписчиков по SMTP.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lms-backend/internal/config"
	"github.com/magabrotheeeer/lms-backend/internal/lib/rabbitmq"
	smtplib "github.com/magabrotheeeer/lms-backend/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/lms-backend/internal/services/sender"
	"github.com/magabrotheeeer/lms-backend/internal/storage/repository"
)

// App представляет приложение рассылки уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	queueName     string
	logger        *slog.Logger
}

// New создает новый экземпляр приложения рассылки.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
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

	newTransport := smtplib.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(db, newTransport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		queueName:     cfg.CourseUpdates,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди обновлений курсов и ждет отмены контекста.
func (a *App) Run(ctx context.Context) error {
	handler := func(body []byte) error {
		return a.senderService.SendCourseUpdateNotifications(ctx, body)
	}

	if err := rabbitmq.ConsumeEvents(ctx, a.ch, a.queueName, a.logger, handler); err != nil {
		a.logger.Error("failed to start consumer",
			slog.String("queue", a.queueName), slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
