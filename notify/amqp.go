package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeName is the fanout exchange status notifications go out on.
// Subscribers bind their own queues; the publisher knows none of them.
const ExchangeName = "notifications_fanout"

const publishTimeout = 5 * time.Second

// AMQPNotifier publishes status notifications to a durable fanout exchange
// on RabbitMQ.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *zap.Logger
}

// NewAMQPNotifier dials url and declares the exchange.
func NewAMQPNotifier(url string, log *zap.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = channel.ExchangeDeclare(
		ExchangeName, // name
		"fanout",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPNotifier{conn: conn, channel: channel, log: log}, nil
}

func (n *AMQPNotifier) NotifyStatusChange(ctx context.Context, msg StatusNotification) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.channel.PublishWithContext(ctx,
		ExchangeName, // exchange
		"",           // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    msg.ChangedAt,
			Body:         body,
		})
	if err != nil {
		return err
	}

	n.log.Debug("status notification published",
		zap.String("orderNumber", msg.OrderNumber),
		zap.String("newStatus", msg.NewStatus.String()))
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
