package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы подписки. Переход единственный: active -> cancelled.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

// Subscription представляет вложение клиента в фонд.
// Создаётся в статусе active одновременно со списанием баланса,
// переходит в cancelled одновременно с возвратом суммы. Статус
// cancelled терминальный, повторная отмена и реактивация невозможны.
type Subscription struct {
	UID         string          `json:"uid"`                    // Идентификатор подписки с префиксом sub_
	UserUID     string          `json:"user_uid"`               // Владелец подписки
	FundUID     string          `json:"fund_uid"`               // Фонд, к которому привязана подписка
	Amount      decimal.Decimal `json:"amount"`                 // Сумма вложения, > 0
	Status      string          `json:"status"`                 // active или cancelled
	CreatedAt   time.Time       `json:"created_at"`             // Дата создания
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"` // Дата отмены, nil пока подписка активна
}

// DummySubscription используется для приёма данных новой подписки из JSON-запроса.
type DummySubscription struct {
	FundUID string  `json:"fund_id" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
}
