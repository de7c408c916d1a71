package models

import "time"

// Типы уведомлений.
const (
	NotificationSubscriptionConfirmation = "subscription_confirmation"
	NotificationCancellationConfirmation = "cancellation_confirmation"
)

// Статусы уведомлений. Создаются в pending, внешний процесс доставки
// переводит их в sent или failed.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification представляет исходящее уведомление пользователю
// о подтверждении подписки или её отмены.
type Notification struct {
	UID       string     `json:"uid"`               // Идентификатор уведомления с префиксом ntf_
	UserUID   string     `json:"user_uid"`          // Получатель
	Type      string     `json:"type"`              // subscription_confirmation или cancellation_confirmation
	Channel   string     `json:"channel"`           // email или sms, выводится из предпочтения пользователя
	Content   string     `json:"content"`           // Текст уведомления
	Status    string     `json:"status"`            // pending, sent или failed
	CreatedAt time.Time  `json:"created_at"`        // Дата создания
	SentAt    *time.Time `json:"sent_at,omitempty"` // Дата отправки, nil пока не доставлено
}

// NotificationMessage — полезная нагрузка, публикуемая в очередь
// для воркера доставки уведомлений.
type NotificationMessage struct {
	NotificationUID string `json:"notification_uid"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Channel         string `json:"channel"`
	Content         string `json:"content"`
}
