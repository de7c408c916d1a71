// Package services содержит логику бизнес-уровня журнала транзакций.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/fund-subscriptions/internal/models"
	"github.com/magabrotheeeer/fund-subscriptions/internal/services/access"
)

// TransactionRepository описывает контракт для работы с журналом в базе данных.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, txn models.Transaction) (string, error)
	GetTransaction(ctx context.Context, txnUID string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userUID string) ([]*models.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]*models.Transaction, error)
}

// TransactionService ведёт журнал изменений баланса. Записи только
// добавляются, существующие никогда не изменяются.
type TransactionService struct {
	repo TransactionRepository
	log  *slog.Logger
}

// NewTransactionService создает новый экземпляр TransactionService.
func NewTransactionService(repo TransactionRepository, log *slog.Logger) *TransactionService {
	return &TransactionService{
		repo: repo,
		log:  log,
	}
}

// Record добавляет запись журнала и возвращает её UID.
func (s *TransactionService) Record(ctx context.Context, userUID, txnType, fundUID string,
	amount, balanceBefore, balanceAfter decimal.Decimal) (string, error) {
	txn := models.Transaction{
		UID:           fmt.Sprintf("txn_%s", uuid.New().String()),
		UserUID:       userUID,
		Type:          txnType,
		FundUID:       fundUID,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Status:        models.TransactionCompleted,
	}
	uid, err := s.repo.CreateTransaction(ctx, txn)
	if err != nil {
		return "", err
	}
	s.log.Info("recorded transaction",
		slog.String("uid", uid),
		slog.String("type", txnType),
		slog.String("user_uid", userUID))
	return uid, nil
}

// List возвращает записи журнала в области видимости вызывающего
// от новых к старым.
func (s *TransactionService) List(ctx context.Context, p models.Principal, requestedUID string) ([]*models.Transaction, error) {
	scope := access.Resolve(p, requestedUID)
	if scope.All {
		return s.repo.ListAllTransactions(ctx)
	}
	return s.repo.ListTransactions(ctx, scope.UserUID)
}

// Read возвращает запись журнала по UID. Клиент может читать только
// собственные записи, чужие для него неотличимы от несуществующих.
func (s *TransactionService) Read(ctx context.Context, p models.Principal, txnUID string) (*models.Transaction, error) {
	txn, err := s.repo.GetTransaction(ctx, txnUID)
	if err != nil {
		return nil, err
	}
	if !access.CanView(p, txn.UserUID) {
		return nil, models.ErrTransactionNotFound
	}
	return txn, nil
}
