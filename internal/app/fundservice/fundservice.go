// Package fundservice собирает основное приложение сервиса фондов:
// хранилище, кэш, очередь уведомлений, бизнес-сервисы и HTTP-сервер.
package fundservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fund-subscriptions/internal/cache"
	"github.com/magabrotheeeer/fund-subscriptions/internal/config"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/jwt"
	"github.com/magabrotheeeer/fund-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/fund-subscriptions/internal/migrations"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	"github.com/magabrotheeeer/fund-subscriptions/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/auth"
	balanceservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/balance"
	fundcatalog "github.com/magabrotheeeer/fund-subscriptions/internal/services/fund"
	notificationservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/notification"
	subscriptionservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/subscription"
	transactionservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/transaction"
	"github.com/magabrotheeeer/fund-subscriptions/internal/storage/repository"
)

// App объединяет зависимости основного приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создает приложение: подключает зависимости, применяет миграции,
// наполняет каталог фондов и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
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
	publisher := rabbitmq.NewNotificationPublisher(ch)

	m := metrics.New(prometheus.DefaultRegisterer)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker,
		decimal.NewFromFloat(cfg.InitialClientBalance))
	fundService := fundcatalog.NewFundService(db, cacheRedis, logger)
	balanceService := balanceservice.NewBalanceService(db, m, logger)
	transactionService := transactionservice.NewTransactionService(db, logger)
	notificationService := notificationservice.NewNotificationService(db, publisher, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(
		db, fundService, balanceService, transactionService, notificationService, db, m, logger)

	if err := fundService.Seed(ctx); err != nil {
		return nil, err
	}
	if cfg.AdminEmail != "" {
		if err := authService.SeedAdmin(ctx, models.DummyRegister{
			Email:                  cfg.AdminEmail,
			Phone:                  cfg.AdminPhone,
			Password:               cfg.AdminPassword,
			NotificationPreference: models.ChannelEmail,
		}); err != nil {
			return nil, err
		}
		logger.Info("admin account ready", slog.String("email", cfg.AdminEmail))
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Fund:         fundService,
		Balance:      balanceService,
		Subscription: subscriptionService,
		Transaction:  transactionService,
		Notification: notificationService,
	}, func() error {
		return repository.CheckDatabaseReady(db)
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
