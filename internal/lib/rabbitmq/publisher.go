package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// PublishEvent сериализует событие платформы в JSON и публикует его
// в обменник с заданным ключом маршрутизации. Сообщения помечаются
// как persistent, чтобы пережить перезапуск брокера.
func PublishEvent(ch *amqp.Channel, exchange, routingKey string, event any) error {
	const op = "rabbitmq.PublishEvent"

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
