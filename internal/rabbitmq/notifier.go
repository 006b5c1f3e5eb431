package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/videonest/backend/internal/models"
)

// NotificationsExchange имя exchange уведомлений.
const NotificationsExchange = "notifications"

// Publisher публикует уведомления приложения в exchange notifications.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishWelcome ставит приветственное уведомление в очередь воркера писем.
func (p *Publisher) PublishWelcome(notification models.WelcomeNotification) error {
	return PublishMessage(p.ch, NotificationsExchange, WelcomeRoutingKey, notification)
}
