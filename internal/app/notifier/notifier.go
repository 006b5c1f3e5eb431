// Package notifier собирает воркер приветственных писем: подключение
// к RabbitMQ, SMTP-транспорт и сервис отправки.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/videonest/backend/internal/config"
	"github.com/videonest/backend/internal/lib/smtp"
	"github.com/videonest/backend/internal/rabbitmq"
	mailerservice "github.com/videonest/backend/internal/services/mailer"
)

// App инкапсулирует подключение к брокеру и сервис отправки писем.
type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	mailer *mailerservice.MailerService
	logger *slog.Logger
}

// New подключается к RabbitMQ, объявляет очереди уведомлений
// и собирает сервис отправки писем поверх SMTP-транспорта.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	mailer := mailerservice.NewMailerService(logger, transport)

	return &App{
		conn:   conn,
		ch:     ch,
		mailer: mailer,
		logger: logger,
	}, nil
}

// Run запускает потребителя очереди приветственных писем
// и работает до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.WelcomeQueue, a.mailer.SendWelcomeEmail)
	if err != nil {
		a.logger.Error("failed to start welcome queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
