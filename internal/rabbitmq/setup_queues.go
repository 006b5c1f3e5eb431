package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации в exchange уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// WelcomeQueue очередь приветственных писем новым пользователям.
const WelcomeQueue = "notifications.welcome"

// WelcomeRoutingKey ключ маршрутизации приветственных уведомлений.
const WelcomeRoutingKey = "welcome"

// GetNotificationQueues возвращает очереди, обслуживаемые воркером уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: WelcomeQueue, RoutingKey: WelcomeRoutingKey},
	}
}
