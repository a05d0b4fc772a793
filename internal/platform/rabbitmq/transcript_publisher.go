package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"docuchat/internal/model"
)

// TranscriptPublisher pushes transcript messages onto the durable persistence
// queue; the transcript worker drains it into MySQL.
type TranscriptPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewTranscriptPublisher(conn *amqp.Connection, queueName string) *TranscriptPublisher {
	return &TranscriptPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *TranscriptPublisher) Publish(ctx context.Context, msg model.Message) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal transcript payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish transcript message failed: %w", err)
	}
	return nil
}
