package model

import "time"

const EntityName = "analytics"

const (
	Period7Days   = "7d"
	Period30Days  = "30d"
	Period90Days  = "90d"
	Period1Year   = "1y"
	DefaultPeriod = Period30Days
)

var periodDays = map[string]int{
	Period7Days:  7,
	Period30Days: 30,
	Period90Days: 90,
	Period1Year:  365,
}

// PeriodDays returns the number of days covered by a period, or false for an unknown period.
func PeriodDays(period string) (int, bool) {
	days, ok := periodDays[period]

	return days, ok
}

// Window is the half open date range [From, To) a summary covers.
type Window struct {
	From time.Time
	To   time.Time
	Days int
}

// WindowEnding returns the window of days ending with today, inclusive.
func WindowEnding(today time.Time, days int) Window {
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, 1)

	return Window{From: to.AddDate(0, 0, -days), To: to, Days: days}
}

// BookingStats aggregates bookings that overlap a window.
type BookingStats struct {
	TotalBookings  int     `db:"total_bookings"`
	Revenue        float64 `db:"revenue"`
	StayNights     int     `db:"stay_nights"`
	OccupiedNights int     `db:"occupied_nights"`
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// AverageDailyRate is revenue per booked night.
func (s BookingStats) AverageDailyRate() float64 {
	if s.StayNights == 0 {
		return 0
	}

	return s.Revenue / float64(s.StayNights)
}

// OccupancyRate is the share of sellable room nights in the window that were booked.
func (s BookingStats) OccupancyRate(rooms, days int) float64 {
	if rooms == 0 || days == 0 {
		return 0
	}

	return float64(s.OccupiedNights) / float64(rooms*days)
}
