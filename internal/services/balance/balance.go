// Package services содержит логику бизнес-уровня управления балансом.
// Баланс изменяется только здесь, условным обновлением compare-and-set:
// конкурентные списания не могут увести баланс в минус или потерять запись.
package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/fund-subscriptions/internal/metrics"
	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
)

// casAttempts число попыток условного обновления до возврата конфликта.
const casAttempts = 5

// BalanceRepository описывает контракт для работы с балансом в базе данных.
type BalanceRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdateUserBalance(ctx context.Context, userUID string, newBalance, expectedBalance decimal.Decimal) (int64, error)
	SetUserBalance(ctx context.Context, userUID string, newBalance decimal.Decimal) (int64, error)
}

// BalanceService единственная точка изменения баланса пользователя.
type BalanceService struct {
	repo    BalanceRepository
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewBalanceService создает новый экземпляр BalanceService.
func NewBalanceService(repo BalanceRepository, m *metrics.Metrics, log *slog.Logger) *BalanceService {
	return &BalanceService{
		repo:    repo,
		metrics: m,
		log:     log,
	}
}

// Get возвращает текущий баланс пользователя.
func (s *BalanceService) Get(ctx context.Context, userUID string) (decimal.Decimal, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Balance, nil
}

// Set перезаписывает баланс пользователя. Административная операция,
// отрицательные значения отклоняются.
func (s *BalanceService) Set(ctx context.Context, userUID string, newBalance decimal.Decimal) error {
	if newBalance.IsNegative() {
		return models.ErrNegativeBalance
	}
	count, err := s.repo.SetUserBalance(ctx, userUID, newBalance)
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrUserNotFound
	}
	s.log.Info("balance overwritten",
		slog.String("user_uid", userUID),
		slog.String("balance", newBalance.String()))
	return nil
}

// Debit списывает amount с баланса пользователя и возвращает баланс до и
// после списания. При недостатке средств возвращает ErrInsufficientBalance,
// при исчерпании попыток условного обновления ErrBalanceConflict.
func (s *BalanceService) Debit(ctx context.Context, userUID string, amount decimal.Decimal) (before, after decimal.Decimal, err error) {
	return s.apply(ctx, userUID, amount.Neg())
}

// Credit зачисляет amount на баланс пользователя и возвращает баланс
// до и после зачисления.
func (s *BalanceService) Credit(ctx context.Context, userUID string, amount decimal.Decimal) (before, after decimal.Decimal, err error) {
	return s.apply(ctx, userUID, amount)
}

func (s *BalanceService) apply(ctx context.Context, userUID string, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		user, err := s.repo.GetUser(ctx, userUID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		newBalance := user.Balance.Add(delta)
		if newBalance.IsNegative() {
			return decimal.Zero, decimal.Zero, models.ErrInsufficientBalance
		}

		count, err := s.repo.UpdateUserBalance(ctx, userUID, newBalance, user.Balance)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if count > 0 {
			return user.Balance, newBalance, nil
		}
		// Баланс изменился между чтением и записью, перечитываем.
		s.log.Debug("balance update conflict, retrying",
			slog.String("user_uid", userUID),
			slog.Int("attempt", attempt+1))
	}
	s.metrics.BalanceConflicts.Inc()
	return decimal.Zero, decimal.Zero, models.ErrBalanceConflict
}
