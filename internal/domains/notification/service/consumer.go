package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/internal/domains/notification/model"
)

// Consumer reads the notification topic, renders every message and hands it to the sender.
type Consumer struct {
	kafka    kafka.Client
	renderer Renderer
	sender   Sender
	cfg      *config.Config
}

func NewConsumer(kafka kafka.Client, renderer Renderer, sender Sender, cfg *config.Config) *Consumer {
	return &Consumer{
		kafka:    kafka,
		renderer: renderer,
		sender:   sender,
		cfg:      cfg,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	log.Info().Str("topic", c.cfg.Kafka.Topics.Notification).Msg("notification consumer started")

	return c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, c.cfg.Kafka.Topics.Notification, c.Handle) //nolint:wrapcheck
}

// Handle processes one message. Malformed payloads are dropped so they do not block the partition.
func (c *Consumer) Handle(ctx context.Context, message kafkaGo.Message) error {
	notification, err := kafka.DecodeKafkaMessage[model.Notification](message)
	if err != nil {
		log.Error().Err(err).Int64("offset", message.Offset).Msg("dropping malformed notification")

		return nil
	}

	if notification.Recipient == "" || !notification.Type.Valid() {
		log.Error().Str("type", string(notification.Type)).Msg("dropping notification without recipient or known type")

		return nil
	}

	rendered, err := c.renderer.Render(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}

	if err = c.sender.Send(ctx, rendered); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}
