// Package fundservice предоставляет маршруты основного приложения.
package fundservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/auth/register"
	fundcreate "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/fund/create"
	fundlist "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/fund/list"
	fundread "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/fund/read"
	fundupdate "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/fund/update"
	"github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/health"
	ntflist "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/notification/list"
	ntfread "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/notification/read"
	subcreate "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/subscription/list"
	subread "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/subscription/read"
	subremove "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/subscription/remove"
	txnlist "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/transaction/list"
	txnread "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/transaction/read"
	userbalance "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/user/balance"
	userlist "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/user/read"
	userupdate "github.com/magabrotheeeer/fund-subscriptions/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/fund-subscriptions/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/auth"
	balanceservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/balance"
	fundcatalog "github.com/magabrotheeeer/fund-subscriptions/internal/services/fund"
	notificationservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/notification"
	subscriptionservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/subscription"
	transactionservice "github.com/magabrotheeeer/fund-subscriptions/internal/services/transaction"
)

// Services объединяет бизнес-сервисы, необходимые маршрутам.
type Services struct {
	Auth         *authservice.AuthService
	Fund         *fundcatalog.FundService
	Balance      *balanceservice.BalanceService
	Subscription *subscriptionservice.SubscriptionService
	Transaction  *transactionservice.TransactionService
	Notification *notificationservice.NotificationService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, readyCheck health.Checker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger, readyCheck).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/funds", fundlist.New(logger, s.Fund).ServeHTTP)
			r.Get("/funds/{uid}", fundread.New(logger, s.Fund).ServeHTTP)

			r.Post("/subscriptions", subcreate.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/{uid}", subread.New(logger, s.Subscription).ServeHTTP)
			r.Delete("/subscriptions/{uid}", subremove.New(logger, s.Subscription).ServeHTTP)

			r.Get("/transactions", txnlist.New(logger, s.Transaction).ServeHTTP)
			r.Get("/transactions/{uid}", txnread.New(logger, s.Transaction).ServeHTTP)

			r.Get("/notifications", ntflist.New(logger, s.Notification).ServeHTTP)
			r.Get("/notifications/{uid}", ntfread.New(logger, s.Notification).ServeHTTP)

			r.Get("/users/{uid}", userread.New(logger, s.Auth).ServeHTTP)
			r.Put("/users/me", userupdate.New(logger, s.Auth).ServeHTTP)

			// Административные операции
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Post("/funds", fundcreate.New(logger, s.Fund).ServeHTTP)
				r.Put("/funds/{uid}", fundupdate.New(logger, s.Fund).ServeHTTP)
				r.Get("/users", userlist.New(logger, s.Auth).ServeHTTP)
				r.Put("/users/{uid}/balance", userbalance.New(logger, s.Balance).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
