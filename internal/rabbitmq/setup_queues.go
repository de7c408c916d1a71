package rabbitmq

// QueueConfig связывает очередь с ключом маршрутизации exchange "notifications".
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Очереди доставки уведомлений, ключ маршрутизации совпадает с каналом.
const (
	EmailQueue = "notifications.email"
	SMSQueue   = "notifications.sms"
)

// GetNotificationQueues возвращает очереди воркера доставки уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: EmailQueue, RoutingKey: "email"},
		{QueueName: SMSQueue, RoutingKey: "sms"},
	}
}
