package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"letterforge/internal/model"
)

// EmailPublisher enqueues letter delivery jobs for the delivery worker.
type EmailPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewEmailPublisher(conn *amqp.Connection, queueName string) *EmailPublisher {
	return &EmailPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *EmailPublisher) Publish(ctx context.Context, job model.EmailJob) error {
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

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job failed: %w", err)
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
		return fmt.Errorf("publish email job failed: %w", err)
	}
	return nil
}
