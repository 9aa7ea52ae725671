// Package timezone keeps every date the hotel sees in one configured zone.
//
// Stays are calendar dates: check-in and check-out are parsed with ParseDate,
// compared against Today, and counted with DaysBetween. Timestamps such as
// created_at or paid_at go through Now and Format.
//
// The zone is read from APP_TIMEZONE when the package is imported and must be an
// IANA name such as "UTC" or "Africa/Nairobi". An invalid name falls back to UTC.
package timezone
