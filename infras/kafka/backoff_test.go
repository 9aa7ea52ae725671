package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleep(t *testing.T) {
	t.Run("waits out the delay", func(t *testing.T) {
		start := time.Now()

		assert.True(t, sleep(context.Background(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("cancellation cuts the wait short", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()

		assert.False(t, sleep(ctx, time.Minute))
		assert.Less(t, time.Since(start), time.Second)
	})
}
