package models

import "errors"

// Сентинельные ошибки доменного уровня. Сервисы возвращают их (при
// необходимости обёрнутыми через fmt.Errorf с %w), HTTP-слой сопоставляет
// их со статус-кодами через errors.Is.
var (
	// Не найдено.
	ErrUserNotFound         = errors.New("user not found")
	ErrFundNotFound         = errors.New("fund not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Валидация и бизнес-правила.
	ErrFundInactive        = errors.New("fund is not active")
	ErrBelowMinimumAmount  = errors.New("amount is below the fund minimum")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeBalance     = errors.New("balance must not be negative")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrDuplicateUser       = errors.New("user with this email already exists")
	ErrFundAlreadyExists   = errors.New("fund with this uid already exists")

	// Недопустимое состояние.
	ErrSubscriptionCancelled = errors.New("subscription is already cancelled")

	// Конкурентный конфликт: compare-and-set баланса исчерпал попытки.
	ErrBalanceConflict = errors.New("balance update conflict")
)
