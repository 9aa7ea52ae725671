package service

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=../mocks/dispatcher_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/kafka"
	"hotelops/infras/otel"
	"hotelops/internal/domains/notification/model"
	"hotelops/shared/constant"
)

// Dispatcher hands notifications to the delivery pipeline without blocking the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, notification model.Notification)
}

type dispatcherImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewDispatcher(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

// Dispatch publishes in the background. Failures are logged and never reach the caller.
func (d *dispatcherImpl) Dispatch(ctx context.Context, notification model.Notification) {
	c := context.WithoutCancel(ctx)

	go d.publish(c, notification)
}

func (d *dispatcherImpl) publish(ctx context.Context, notification model.Notification) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Dispatch")
	defer scope.End()

	scope.SetAttribute("notification.type", string(notification.Type))

	topic := d.cfg.Kafka.Topics.Notification
	message := kafka.Message{Key: notification.Recipient, Value: notification}

	if err := d.kafka.SendMessages(ctx, topic, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).
			Str("type", string(notification.Type)).
			Str("topic", topic).
			Msg("failed to dispatch notification")

		return
	}

	log.Debug().Str("type", string(notification.Type)).Msg("notification dispatched")
}
