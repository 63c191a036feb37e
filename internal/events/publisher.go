package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jacksonn455/wallet-service/internal/domain"
)

const EventTransactionCreated = "TRANSACTION_CREATED"

// Message is the envelope other systems consume from the queue.
type Message struct {
	Event     string             `json:"event"`
	Data      domain.Transaction `json:"data"`
	Timestamp string             `json:"timestamp"`
}

// Publisher announces ledger writes on a durable RabbitMQ queue. Messages
// are published persistent so they survive a broker restart.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Connect dials the broker and declares the queue durable. The queue must
// exist before the first write enters the service.
func Connect(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events.Connect: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events.Connect: open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events.Connect: declare queue %s: %w", queue, err)
	}

	return &Publisher{conn: conn, channel: channel, queue: queue}, nil
}

// NewTransactionCreated builds the message announcing a persisted
// transaction, stamped with the publish time.
func NewTransactionCreated(tx domain.Transaction) Message {
	return Message{
		Event:     EventTransactionCreated,
		Data:      tx,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// PublishTransactionCreated announces a persisted transaction. A failure
// here leaves the store write in place; the caller decides how to surface
// the inconsistency.
func (p *Publisher) PublishTransactionCreated(ctx context.Context, tx domain.Transaction) error {
	body, err := json.Marshal(NewTransactionCreated(tx))
	if err != nil {
		return fmt.Errorf("PublishTransactionCreated: marshal: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("PublishTransactionCreated: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("events.Close: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("events.Close: %w", err)
	}
	return nil
}
