package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"letterforge/internal/email"
	"letterforge/internal/model"
)

// EmailDeliveryWorker drains the letter-email queue. Delivery is best
// effort: a job that fails to send is dropped with a log line rather than
// redelivered forever, since the purchase itself already succeeded.
type EmailDeliveryWorker struct {
	conn      *amqp.Connection
	sender    *email.Sender
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEmailDeliveryWorker(conn *amqp.Connection, sender *email.Sender, queueName string) *EmailDeliveryWorker {
	return &EmailDeliveryWorker{
		conn:      conn,
		sender:    sender,
		queueName: queueName,
	}
}

func (w *EmailDeliveryWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var job model.EmailJob
				if err := json.Unmarshal(d.Body, &job); err != nil {
					log.Printf("drop malformed email job: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				emailID, err := w.sender.SendLetter(workerCtx, job)
				if err != nil {
					log.Printf("send letter email for %s failed: %v", job.DocumentID, err)
					_ = d.Nack(false, false)
					continue
				}

				log.Printf("letter email for %s sent, id=%s", job.DocumentID, emailID)
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *EmailDeliveryWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
