package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// Routing keys for order lifecycle events
const (
	ExchangeName         = "pizzastore.orders"
	RoutingOrderCreated  = "order.created"
	RoutingStatusUpdated = "order.status_updated"
)

// OrderEvent is the message body published for order lifecycle changes
type OrderEvent struct {
	OrderID    string          `json:"orderId"`
	UserID     string          `json:"userId"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// Publisher emits order lifecycle events. A nil *AMQPPublisher is valid and
// publishes nothing, so wiring stays unconditional in the services.
type Publisher interface {
	Publish(routingKey string, event OrderEvent) error
	Close() error
}

// AMQPPublisher publishes events to a RabbitMQ topic exchange
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQPPublisher connects to RabbitMQ and declares the order topic exchange
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}

	log.WithField("exchange", ExchangeName).Info("RabbitMQ publisher connected")

	return &AMQPPublisher{conn: conn, channel: ch}, nil
}

// Publish sends the event to the order exchange. A nil receiver is a no-op.
func (p *AMQPPublisher) Publish(routingKey string, event OrderEvent) error {
	if p == nil || p.channel == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.channel.Publish(
		ExchangeName, // exchange
		routingKey,   // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}

	log.WithFields(log.Fields{
		"routing_key": routingKey,
		"order_id":    event.OrderID,
	}).Debug("Order event published")
	return nil
}

// Close closes the channel and connection. A nil receiver is a no-op.
func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during publisher close: %v", errs)
	}
	return nil
}
