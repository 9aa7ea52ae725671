package timezone

import (
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/config"
)

const dateLayout = time.DateOnly

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Africa/Dar_es_Salaam' or 'UTC'")

		appLocation = time.UTC

		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Msg("Application timezone initialized")
}

func location() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(location())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	return location()
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location()) //nolint:wrapcheck
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay is local midnight of the calendar day t falls on in the application timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location())
}

// Today is StartOfDay(Now()).
func Today() time.Time {
	return StartOfDay(Now())
}

// ParseDate reads a YYYY-MM-DD calendar date as local midnight.
func ParseDate(value string) (time.Time, error) {
	return Parse(dateLayout, value)
}

// FormatDate writes the calendar date of t without converting it first. Dates read
// from DATE columns carry no zone, so shifting them would move the day.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DaysBetween counts calendar days from one date to another, ignoring the clock.
// Midnights a DST change apart are 23 or 25 hours apart and still count as one day.
func DaysBetween(from, to time.Time) int {
	fromY, fromM, fromD := from.Date()
	toY, toM, toD := to.Date()

	start := time.Date(fromY, fromM, fromD, 0, 0, 0, 0, time.UTC)
	end := time.Date(toY, toM, toD, 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start).Hours() / 24)
}
