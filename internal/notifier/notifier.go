// Package notifier publishes workflow notifications to the message queue.
// Delivery to staff inboxes is the notifier worker's job (cmd/notifier); the
// publisher is fire-and-forget, so a queue failure is logged and the workflow
// transition that triggered it still stands.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rsud-harapan/roster-manager/backend/internal/config"
	"github.com/rsud-harapan/roster-manager/backend/internal/domain"
)

// QueueName is declared by both the API server and the notifier worker.
const QueueName = "notification_queue"

type Publisher struct {
	cfg     *config.Config
	channel *amqp.Channel
}

func NewPublisher(cfg *config.Config, channel *amqp.Channel) *Publisher {
	return &Publisher{
		cfg:     cfg,
		channel: channel,
	}
}

func (p *Publisher) Notify(member *domain.StaffMember, eventType string, data any) {
	msg := domain.NotificationMessage{
		Type: eventType,
		To:   member.Email,
		Data: data,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to serialize notification", "type", eventType, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(p.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := p.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("failed to publish notification", "type", eventType, "to", member.Email, "error", err)
	}
}
