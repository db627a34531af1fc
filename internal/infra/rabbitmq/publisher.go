package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	"sales-service/internal/platform/logger"
)

type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *logger.Logger
}

// EventMessage is the body of every published event. Pattern repeats the
// routing key so consumers bound with wildcards can dispatch on it.
type EventMessage struct {
	Pattern    string    `json:"pattern"`
	Data       any       `json:"data"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewPublisher(amqpURL, exchange string, log *logger.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, errors.Wrap(err, "connect rabbitmq")
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, errors.Wrapf(err, "declare exchange %s", exchange)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log.With("service", "RabbitPublisher"),
	}, nil
}

// Publish sends data under routingKey. Safe for concurrent use.
func (p *Publisher) Publish(ctx context.Context, routingKey string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := NewEventMessage(routingKey, data)
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "publish %s", routingKey)
	}
	p.log.Debug("event published", "routing_key", routingKey, "message_id", msg.ID)
	return nil
}

func NewEventMessage(pattern string, data any) EventMessage {
	return EventMessage{
		Pattern:    pattern,
		Data:       data,
		ID:         uuid.NewString(),
		OccurredAt: time.Now().UTC(),
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
