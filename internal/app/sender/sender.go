// Package sender собирает приложение воркера доставки уведомлений.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fund-subscriptions/internal/config"
	smtplib "github.com/magabrotheeeer/fund-subscriptions/internal/lib/smtp"
	"github.com/magabrotheeeer/fund-subscriptions/internal/rabbitmq"
	notificationservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/notification"
	senderservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/sender"
	"github.com/magabrotheeeer/fund-subscriptions/internal/storage/repository"
)

// App объединяет зависимости воркера доставки.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New создает приложение воркера: хранилище для отметок статуса,
// подключение к RabbitMQ и SMTP транспорт.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Воркеру не нужна публикация, только отметки статуса доставки.
	notificationService := notificationservice.NewNotificationService(db, nil, logger)
	transport := smtplib.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(transport, notificationService, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителей очередей и ждет отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.EmailQueue, a.senderService.SendEmailNotification)
	if err != nil {
		a.logger.Error("failed to start email queue consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.SMSQueue, a.senderService.SendSMSNotification)
	if err != nil {
		a.logger.Error("failed to start sms queue consumer", slog.Any("err", err))
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
