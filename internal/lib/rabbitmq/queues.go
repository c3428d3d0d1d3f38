package rabbitmq

// MintExchange — exchange, в который публикуются события минта.
const MintExchange = "mint_events"

// Маршрутные ключи событий минта.
const (
	RoutingKeyMinted = "minted"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetMintQueues возвращает очереди потребителей mint-событий.
func GetMintQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "mint.completed", RoutingKey: RoutingKeyMinted},
	}
}
