package rabbitmq

import "github.com/streadway/amqp"

// NotificationPublisher публикует сообщения уведомлений
// в exchange "notifications".
type NotificationPublisher struct {
	ch *amqp.Channel
}

// NewNotificationPublisher создает публикатор поверх открытого канала.
func NewNotificationPublisher(ch *amqp.Channel) *NotificationPublisher {
	return &NotificationPublisher{ch: ch}
}

// Publish сериализует сообщение и публикует его с заданным ключом
// маршрутизации ("email" или "sms").
func (p *NotificationPublisher) Publish(routingKey string, message any) error {
	return PublishMessage(p.ch, "notifications", routingKey, message)
}
