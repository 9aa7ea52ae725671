package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	kafkaMocks "hotelops/infras/kafka/mocks"
	"hotelops/internal/domains/notification/mocks"
	"hotelops/internal/domains/notification/model"
	"hotelops/internal/domains/notification/service"
)

type consumerFixture struct {
	kafka    *kafkaMocks.MockClient
	renderer *mocks.MockRenderer
	sender   *mocks.MockSender
	consumer *service.Consumer
}

func newConsumer(t *testing.T) consumerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "notifier"
	cfg.Kafka.Topics.Notification = "notifications"

	f := consumerFixture{
		kafka:    kafkaMocks.NewMockClient(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
		sender:   mocks.NewMockSender(ctrl),
	}
	f.consumer = service.NewConsumer(f.kafka, f.renderer, f.sender, cfg)

	return f
}

func encode(t *testing.T, value any) kafkaGo.Message {
	t.Helper()

	payload, err := json.Marshal(value)
	require.NoError(t, err)

	return kafkaGo.Message{Value: payload}
}

func TestConsumer_Handle(t *testing.T) {
	notification := model.Notification{
		Type:      model.TypePasswordReset,
		Recipient: "user@example.com",
		Variables: map[string]string{model.VarResetURL: "https://example.com/reset"},
	}

	t.Run("renders and sends", func(t *testing.T) {
		f := newConsumer(t)
		rendered := model.Message{Type: notification.Type, Recipient: notification.Recipient, Subject: "Reset"}

		f.renderer.EXPECT().Render(gomock.Any(), notification).Return(rendered, nil)
		f.sender.EXPECT().Send(gomock.Any(), rendered).Return(nil)

		require.NoError(t, f.consumer.Handle(context.Background(), encode(t, notification)))
	})

	t.Run("malformed payload is dropped", func(t *testing.T) {
		f := newConsumer(t)

		require.NoError(t, f.consumer.Handle(context.Background(), kafkaGo.Message{Value: []byte("{")}))
	})

	t.Run("missing recipient is dropped", func(t *testing.T) {
		f := newConsumer(t)

		require.NoError(t, f.consumer.Handle(context.Background(), encode(t, model.Notification{Type: model.TypePasswordReset})))
	})

	t.Run("render failure drops the message with an error", func(t *testing.T) {
		f := newConsumer(t)
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(model.Message{}, errors.New("db down"))

		require.Error(t, f.consumer.Handle(context.Background(), encode(t, notification)))
	})

	t.Run("send failure drops the message with an error", func(t *testing.T) {
		f := newConsumer(t)
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(model.Message{}, nil)
		f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		require.Error(t, f.consumer.Handle(context.Background(), encode(t, notification)))
	})
}

func TestConsumer_Run(t *testing.T) {
	f := newConsumer(t)
	f.kafka.EXPECT().Consume(gomock.Any(), "notifier", "notifications", gomock.Any()).Return(context.Canceled)

	err := f.consumer.Run(context.Background())

	assert.ErrorIs(t, err, context.Canceled)
}
