// Package notifier публикует события минта в RabbitMQ.
package notifier

import (
	"github.com/streadway/amqp"

	"github.com/enftlab/enft-backend/internal/lib/rabbitmq"
	"github.com/enftlab/enft-backend/internal/services/mint"
)

// Notifier публикует mint-события в exchange mint_events.
type Notifier struct {
	ch *amqp.Channel
}

// New создает новый Notifier поверх открытого канала.
func New(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// PublishMint публикует событие успешного минта.
func (n *Notifier) PublishMint(event mint.Event) error {
	return rabbitmq.PublishMessage(n.ch, rabbitmq.MintExchange, rabbitmq.RoutingKeyMinted, event)
}
