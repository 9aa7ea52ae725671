package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	otelMocks "hotelops/infras/otel/mocks"
	"hotelops/internal/domains/notification/mocks"
	"hotelops/internal/domains/notification/model"
	"hotelops/internal/domains/notification/service"
	"hotelops/shared/cache"
	cacheMocks "hotelops/shared/cache/mocks"
)

func newRenderer(t *testing.T) (service.Renderer, *mocks.MockTemplate) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTemplate(ctrl)

	cacheMock := cacheMocks.NewMockRedisCache(ctrl)
	cacheMock.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	cacheMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.NewRenderer(repo, &config.Config{}, cacheMock, otelMocks.NewOtel()), repo
}

func TestRenderer_Render(t *testing.T) {
	notification := model.Notification{
		Type:      model.TypeBookingCancellation,
		Recipient: "guest@example.com",
		Variables: map[string]string{
			model.VarGuestName:        "Ada",
			model.VarBookingReference: "BK-1",
		},
	}

	t.Run("stored template", func(t *testing.T) {
		renderer, repo := newRenderer(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Template{
			ID:       "tpl-1",
			Type:     model.TypeBookingCancellation,
			Subject:  "Cancelled {{booking_reference}}",
			Content:  "Hi {{guest_name}}, see you {{unknown}}",
			IsActive: true,
		}, nil)

		res, err := renderer.Render(context.Background(), notification)

		require.NoError(t, err)
		assert.Equal(t, "guest@example.com", res.Recipient)
		assert.Equal(t, "Cancelled BK-1", res.Subject)
		assert.Equal(t, "Hi Ada, see you {{unknown}}", res.Body)
	})

	t.Run("falls back to the built-in template", func(t *testing.T) {
		renderer, repo := newRenderer(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Template{}, nil)

		res, err := renderer.Render(context.Background(), notification)

		require.NoError(t, err)
		assert.Equal(t, "Booking BK-1 cancelled", res.Subject)
		assert.Contains(t, res.Body, "Dear Ada")
	})

	t.Run("repository failure", func(t *testing.T) {
		renderer, repo := newRenderer(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Template{}, errors.New("db down"))

		_, err := renderer.Render(context.Background(), notification)

		require.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		renderer, _ := newRenderer(t)

		_, err := renderer.Render(context.Background(), model.Notification{Type: "sms", Recipient: "x"})

		require.Error(t, err)
	})
}
