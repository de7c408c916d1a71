package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы транзакций.
const (
	TransactionSubscription = "subscription"
	TransactionCancellation = "cancellation"
)

// Статусы транзакций.
const (
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
	TransactionPending   = "pending"
)

// Transaction представляет неизменяемую запись журнала о событии,
// затронувшем баланс пользователя. Записи только добавляются,
// по одной на каждое создание или отмену подписки.
type Transaction struct {
	UID           string          `json:"uid"`            // Идентификатор транзакции с префиксом txn_
	UserUID       string          `json:"user_uid"`       // Пользователь, чей баланс изменился
	Type          string          `json:"type"`           // subscription или cancellation
	FundUID       string          `json:"fund_uid"`       // Фонд, с которым связано событие
	Amount        decimal.Decimal `json:"amount"`         // Сумма операции
	BalanceBefore decimal.Decimal `json:"balance_before"` // Баланс до операции
	BalanceAfter  decimal.Decimal `json:"balance_after"`  // Баланс после операции
	Status        string          `json:"status"`         // completed, failed или pending
	CreatedAt     time.Time       `json:"created_at"`     // Дата записи
}
