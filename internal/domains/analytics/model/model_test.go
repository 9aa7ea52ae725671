package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelops/internal/domains/analytics/model"
)

func TestWindowEnding(t *testing.T) {
	w := model.WindowEnding(time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC), 7)

	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), w.To)
	assert.Equal(t, 7, w.Days)
}

func TestBookingStats_Rates(t *testing.T) {
	stats := model.BookingStats{Revenue: 900, StayNights: 6, OccupiedNights: 14}

	assert.InDelta(t, 150.0, stats.AverageDailyRate(), 0.001)
	assert.InDelta(t, 0.5, stats.OccupancyRate(4, 7), 0.001)
	assert.Zero(t, model.BookingStats{}.AverageDailyRate())
	assert.Zero(t, stats.OccupancyRate(0, 7))
}

func TestPeriodDays(t *testing.T) {
	days, ok := model.PeriodDays(model.Period1Year)
	assert.True(t, ok)
	assert.Equal(t, 365, days)

	_, ok = model.PeriodDays("14d")
	assert.False(t, ok)
}
