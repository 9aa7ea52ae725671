package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	otelMocks "hotelops/infras/otel/mocks"
	cacheMocks "hotelops/shared/cache/mocks"
	"hotelops/shared/constant"
	"hotelops/shared/errorlog"
	"hotelops/transport/http/middleware"
)

func limited(t *testing.T, setup func(c *cacheMocks.MockRedisCache)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	cacheMock := cacheMocks.NewMockRedisCache(ctrl)
	setup(cacheMock)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cacheMock, errorlog.New(1))

	return app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRateLimit(t *testing.T) {
	t.Run("first request in window", func(t *testing.T) {
		handler := limited(t, func(c *cacheMocks.MockRedisCache) {
			c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(1, 60*time.Second, nil)
		})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderRetryAfter))
	})

	t.Run("over the limit reports the time left in the window", func(t *testing.T) {
		handler := limited(t, func(c *cacheMocks.MockRedisCache) {
			c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(3, 41500*time.Millisecond, nil)
		})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "42", rec.Header().Get(constant.RequestHeaderRetryAfter))
		assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("rejected retries do not extend the window", func(t *testing.T) {
		resetIn := 30 * time.Second
		count := 2

		handler := limited(t, func(c *cacheMocks.MockRedisCache) {
			c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).
				DoAndReturn(func(context.Context, string, int) (int, time.Duration, error) {
					count++
					resetIn -= 5 * time.Second

					return count, resetIn, nil
				}).
				Times(5)
			c.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		})

		var retryAfters []string

		for range 5 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
			retryAfters = append(retryAfters, rec.Header().Get(constant.RequestHeaderRetryAfter))
		}

		assert.Equal(t, []string{"25", "20", "15", "10", "5"}, retryAfters)
	})

	t.Run("missing expiry falls back to the full window", func(t *testing.T) {
		handler := limited(t, func(c *cacheMocks.MockRedisCache) {
			c.EXPECT().Incr(gomock.Any(), gomock.Any(), 60).Return(3, time.Duration(-1), nil)
		})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRetryAfter))
	})

	t.Run("cache failure lets the request through", func(t *testing.T) {
		handler := limited(t, func(c *cacheMocks.MockRedisCache) {
			c.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, time.Duration(0), errors.New("redis down"))
		})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("health is never limited", func(t *testing.T) {
		handler := limited(t, func(*cacheMocks.MockRedisCache) {})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
