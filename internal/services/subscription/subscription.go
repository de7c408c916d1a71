// Package services содержит движок жизненного цикла подписок на фонды.
// Создание и отмена подписки объединяют проверку бизнес-правил, изменение
// баланса, запись подписки, журнал транзакций и уведомление. Денежная пара
// (баланс и подписка) защищена компенсацией: если второй шаг не удался,
// первый откатывается. Журнал и уведомления пишутся по принципу best effort
// и при неудаче только увеличивают счётчик метрики.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/currency"
	"github.com/magabrotheeeer/fund-subscriptions/internal/lib/sl"
	"github.com/magabrotheeeer/fund-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	"github.com/magabrotheeeer/fund-subscriptions/internal/services/access"
)

// SubscriptionRepository описывает контракт для работы с подписками в базе данных.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
	GetSubscription(ctx context.Context, subUID string) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, userUID string, activeOnly bool) ([]*models.Subscription, error)
	ListAllSubscriptions(ctx context.Context, activeOnly bool) ([]*models.Subscription, error)
	CancelSubscription(ctx context.Context, subUID string, at time.Time) (int64, error)
	ReactivateSubscription(ctx context.Context, subUID string) (int64, error)
}

// FundCatalog описывает контракт чтения каталога фондов.
type FundCatalog interface {
	Read(ctx context.Context, fundUID string) (*models.Fund, error)
}

// Balance описывает контракт изменения баланса пользователя.
type Balance interface {
	Debit(ctx context.Context, userUID string, amount decimal.Decimal) (before, after decimal.Decimal, err error)
	Credit(ctx context.Context, userUID string, amount decimal.Decimal) (before, after decimal.Decimal, err error)
}

// Ledger описывает контракт записи в журнал транзакций.
type Ledger interface {
	Record(ctx context.Context, userUID, txnType, fundUID string,
		amount, balanceBefore, balanceAfter decimal.Decimal) (string, error)
}

// Notifier описывает контракт создания и публикации уведомления.
type Notifier interface {
	CreateAndPublish(ctx context.Context, user *models.User, ntfType, content string) (string, error)
}

// UserDirectory описывает контракт чтения пользователя.
type UserDirectory interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// SubscriptionService реализует операции подписки, отмены и просмотра.
type SubscriptionService struct {
	repo     SubscriptionRepository
	funds    FundCatalog
	balance  Balance
	ledger   Ledger
	notifier Notifier
	users    UserDirectory
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, funds FundCatalog, balance Balance,
	ledger Ledger, notifier Notifier, users UserDirectory, m *metrics.Metrics, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		funds:    funds,
		balance:  balance,
		ledger:   ledger,
		notifier: notifier,
		users:    users,
		metrics:  m,
		log:      log,
	}
}

// Subscribe создает подписку пользователя на фонд. Порядок шагов: проверка
// фонда и суммы, списание баланса, запись подписки. Если запись подписки
// не удалась, списание компенсируется обратным зачислением.
func (s *SubscriptionService) Subscribe(ctx context.Context, userUID string, req models.DummySubscription) (*models.Subscription, error) {
	fund, err := s.funds.Read(ctx, req.FundUID)
	if err != nil {
		return nil, err
	}
	if !fund.IsActive {
		return nil, models.ErrFundInactive
	}

	amount := decimal.NewFromFloat(req.Amount)
	if amount.LessThan(fund.MinimumAmount) {
		return nil, fmt.Errorf("%w: fund %s requires at least %s, requested %s",
			models.ErrBelowMinimumAmount, fund.Name,
			currency.FormatCOP(fund.MinimumAmount), currency.FormatCOP(amount))
	}

	before, after, err := s.balance.Debit(ctx, userUID, amount)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			return nil, fmt.Errorf("%w for fund %s", models.ErrInsufficientBalance, fund.Name)
		}
		return nil, err
	}

	sub := models.Subscription{
		UID:     fmt.Sprintf("sub_%s", uuid.New().String()),
		UserUID: userUID,
		FundUID: fund.UID,
		Amount:  amount,
		Status:  models.SubscriptionActive,
	}
	if _, err := s.repo.CreateSubscription(ctx, sub); err != nil {
		// Списание уже состоялось, возвращаем средства.
		if _, _, creditErr := s.balance.Credit(ctx, userUID, amount); creditErr != nil {
			s.metrics.SideEffectFailures.WithLabelValues("compensation").Inc()
			s.log.Error("failed to compensate debit after subscription insert failure",
				slog.String("user_uid", userUID), sl.Err(creditErr))
		}
		return nil, err
	}
	s.metrics.SubscriptionsCreated.Inc()
	s.log.Info("created subscription",
		slog.String("uid", sub.UID),
		slog.String("fund_uid", fund.UID),
		slog.String("user_uid", userUID))

	s.recordAndNotify(ctx, userUID, models.TransactionSubscription, fund, amount, before, after,
		models.NotificationSubscriptionConfirmation,
		fmt.Sprintf("Su suscripcion al fondo %s por %s fue creada exitosamente.",
			fund.Name, currency.FormatCOP(amount)))

	created, err := s.repo.GetSubscription(ctx, sub.UID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel отменяет подписку и возвращает её сумму на баланс владельца.
// Условное обновление статуса гарантирует единственный возврат: повторная
// отмена не изменяет строк и завершается ErrSubscriptionCancelled.
func (s *SubscriptionService) Cancel(ctx context.Context, p models.Principal, subUID string) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, subUID)
	if err != nil {
		return nil, err
	}
	if !access.CanView(p, sub.UserUID) {
		return nil, models.ErrSubscriptionNotFound
	}
	if sub.Status == models.SubscriptionCancelled {
		return nil, models.ErrSubscriptionCancelled
	}

	count, err := s.repo.CancelSubscription(ctx, subUID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, models.ErrSubscriptionCancelled
	}

	before, after, err := s.balance.Credit(ctx, sub.UserUID, sub.Amount)
	if err != nil {
		// Возврат не состоялся, снимаем отмену обратно.
		if _, revertErr := s.repo.ReactivateSubscription(ctx, subUID); revertErr != nil {
			s.metrics.SideEffectFailures.WithLabelValues("compensation").Inc()
			s.log.Error("failed to revert cancellation after credit failure",
				slog.String("uid", subUID), sl.Err(revertErr))
		}
		return nil, err
	}
	s.metrics.SubscriptionsCancelled.Inc()
	s.log.Info("cancelled subscription",
		slog.String("uid", subUID),
		slog.String("user_uid", sub.UserUID))

	fund, err := s.funds.Read(ctx, sub.FundUID)
	if err != nil {
		fund = &models.Fund{UID: sub.FundUID, Name: sub.FundUID}
	}
	s.recordAndNotify(ctx, sub.UserUID, models.TransactionCancellation, fund, sub.Amount, before, after,
		models.NotificationCancellationConfirmation,
		fmt.Sprintf("Su suscripcion al fondo %s fue cancelada, %s fueron devueltos a su saldo.",
			fund.Name, currency.FormatCOP(sub.Amount)))

	cancelled, err := s.repo.GetSubscription(ctx, subUID)
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// recordAndNotify пишет журнал и уведомление после завершённого изменения
// баланса. Ошибки не откатывают операцию, только учитываются в метриках.
func (s *SubscriptionService) recordAndNotify(ctx context.Context, userUID, txnType string,
	fund *models.Fund, amount, before, after decimal.Decimal, ntfType, content string) {
	if _, err := s.ledger.Record(ctx, userUID, txnType, fund.UID, amount, before, after); err != nil {
		s.metrics.SideEffectFailures.WithLabelValues("ledger").Inc()
		s.log.Error("failed to record transaction",
			slog.String("user_uid", userUID), sl.Err(err))
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		s.metrics.SideEffectFailures.WithLabelValues("notification").Inc()
		s.log.Error("failed to load user for notification",
			slog.String("user_uid", userUID), sl.Err(err))
		return
	}
	if _, err := s.notifier.CreateAndPublish(ctx, user, ntfType, content); err != nil {
		s.metrics.SideEffectFailures.WithLabelValues("notification").Inc()
	}
}

// List возвращает подписки в области видимости вызывающего, при activeOnly
// только активные, от новых к старым.
func (s *SubscriptionService) List(ctx context.Context, p models.Principal, requestedUID string, activeOnly bool) ([]*models.Subscription, error) {
	scope := access.Resolve(p, requestedUID)
	if scope.All {
		return s.repo.ListAllSubscriptions(ctx, activeOnly)
	}
	return s.repo.ListSubscriptions(ctx, scope.UserUID, activeOnly)
}

// Read возвращает подписку по UID. Клиент может читать только собственные
// подписки, чужие для него неотличимы от несуществующих.
func (s *SubscriptionService) Read(ctx context.Context, p models.Principal, subUID string) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, subUID)
	if err != nil {
		return nil, err
	}
	if !access.CanView(p, sub.UserUID) {
		return nil, models.ErrSubscriptionNotFound
	}
	return sub, nil
}
