// Package models содержит доменные структуры сервиса фондов:
// пользователей, фонды, подписки, транзакции и уведомления,
// а также вспомогательные Dummy-типы для приёма JSON-запросов.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Роли пользователей системы.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Каналы уведомлений, совпадают с notification_preference пользователя.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// User представляет зарегистрированного пользователя системы.
// Баланс изменяется только сервисом баланса при подписке и отмене.
type User struct {
	UID                    string          `json:"uid"`                     // Уникальный идентификатор пользователя
	Email                  string          `json:"email"`                   // Электронная почта (уникальная)
	Phone                  string          `json:"phone"`                   // Телефон в нормализованном виде +57XXXXXXXXXX
	PasswordHash           string          `json:"-"`                       // Хэш пароля, никогда не сериализуется
	Balance                decimal.Decimal `json:"balance"`                 // Доступный баланс в COP, всегда >= 0
	NotificationPreference string          `json:"notification_preference"` // Предпочитаемый канал уведомлений: email или sms
	Role                   string          `json:"role"`                    // Роль пользователя: client или admin
	CreatedAt              time.Time       `json:"created_at"`              // Дата создания
	UpdatedAt              time.Time       `json:"updated_at"`              // Дата последнего обновления
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email                  string `json:"email" validate:"required,email"`
	Phone                  string `json:"phone" validate:"required"`
	Password               string `json:"password" validate:"required,min=6"`
	NotificationPreference string `json:"notification_preference" validate:"required,oneof=email sms"`
}

// DummyLogin используется для приёма учетных данных из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyUserUpdate используется для обновления профиля пользователя.
// Пустые поля не изменяются.
type DummyUserUpdate struct {
	Phone                  string `json:"phone,omitempty"`
	NotificationPreference string `json:"notification_preference,omitempty" validate:"omitempty,oneof=email sms"`
}

// Principal описывает аутентифицированного вызывающего: идентификатор,
// почта и роль, извлечённые из проверенного JWT.
type Principal struct {
	UserUID string
	Email   string
	Role    string
}

// IsAdmin сообщает, имеет ли вызывающий роль администратора.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
