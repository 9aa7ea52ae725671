package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/shared/timezone"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2025, 3, 14, 17, 45, 12, 0, timezone.GetLocation())

	start := timezone.StartOfDay(at)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, timezone.GetLocation()), start)
	assert.Equal(t, timezone.StartOfDay(timezone.Now()), timezone.Today())
}

func TestParseDate(t *testing.T) {
	parsed, err := timezone.ParseDate("2025-01-31")

	require.NoError(t, err)
	assert.Equal(t, "2025-01-31", timezone.FormatDate(parsed))
	assert.Equal(t, timezone.GetLocation(), parsed.Location())

	_, err = timezone.ParseDate("31/01/2025")
	require.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name     string
		from, to time.Time
		expected int
	}{
		{
			name:     "same day",
			from:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2025, 5, 1, 23, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "across a month",
			from:     time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "across spring forward",
			from:     time.Date(2025, 3, 8, 0, 0, 0, 0, newYork),
			to:       time.Date(2025, 3, 10, 0, 0, 0, 0, newYork),
			expected: 2,
		},
		{
			name:     "backwards",
			from:     time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			expected: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.DaysBetween(tt.from, tt.to))
		})
	}
}

func TestFormat(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, timezone.ToAppTime(at).Format(time.RFC3339), timezone.Format(at, time.RFC3339))
}
