package service

//go:generate go run go.uber.org/mock/mockgen -source=./sender.go -destination=../mocks/sender_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotelops/internal/domains/notification/model"
)

// Sender delivers a rendered message to its recipient.
type Sender interface {
	Send(ctx context.Context, message model.Message) error
}

type logSender struct{}

// NewLogSender returns a Sender that writes messages to the application log.
func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(_ context.Context, message model.Message) error {
	log.Info().
		Str("type", string(message.Type)).
		Str("recipient", message.Recipient).
		Str("subject", message.Subject).
		Int("body_length", len(message.Body)).
		Msg("notification delivered")

	return nil
}
