package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Категории фондов.
const (
	CategoryFPV          = "FPV"
	CategoryFIC          = "FIC"
	CategoryDeudaPrivada = "DEUDAPRIVADA"
)

// Fund представляет фонд каталога с минимальной суммой подписки.
// Изменяется только явным обновлением со стороны администратора.
type Fund struct {
	UID           string          `json:"uid"`            // Идентификатор фонда, совпадает с его каноническим именем
	Name          string          `json:"name"`           // Название фонда
	Category      string          `json:"category"`       // Категория: FPV, FIC или DEUDAPRIVADA
	MinimumAmount decimal.Decimal `json:"minimum_amount"` // Минимальная сумма подписки в COP
	IsActive      bool            `json:"is_active"`      // Доступен ли фонд для подписки
	CreatedAt     time.Time       `json:"created_at"`     // Дата создания
}

// DummyFund используется для приёма данных фонда из JSON-запроса
// при создании и обновлении администратором.
type DummyFund struct {
	UID           string  `json:"uid" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Category      string  `json:"category" validate:"required,oneof=FPV FIC DEUDAPRIVADA"`
	MinimumAmount float64 `json:"minimum_amount" validate:"required,gt=0"`
	IsActive      bool    `json:"is_active"`
}
