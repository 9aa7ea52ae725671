package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var ErrInvalidTransition = errors.New("invalid booking status transition")

// InvalidTransitionError carries the rejected edge. It matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]

	return ok
}

// IsInitial reports whether a booking may be created in this status.
func (s Status) IsInitial() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	next, ok := transitions[s]

	return ok && len(next) == 0
}

// AllowedTransitions returns a copy of the statuses reachable from s.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

func (s Status) CanTransition(to Status) bool {
	return slices.Contains(transitions[s], to)
}

// Transition returns a copy of b moved to status to, stamping the matching timestamp.
// The receiver is never modified. Cancellation goes through Cancel so the refund is quoted.
func (b Booking) Transition(to Status, now time.Time) (Booking, error) {
	if !b.Status.CanTransition(to) {
		return b, &InvalidTransitionError{From: b.Status, To: to}
	}

	next := b
	next.Status = to

	switch to {
	case StatusCheckedIn:
		next.CheckedInAt = &now
	case StatusCheckedOut:
		next.CheckedOutAt = &now
	case StatusCancelled:
		return b.Cancel("", now)
	}

	return next, nil
}

// Cancel moves b to cancelled, recording the reason, the time and the quoted refund.
func (b Booking) Cancel(reason string, now time.Time) (Booking, error) {
	if !b.Status.CanTransition(StatusCancelled) {
		return b, &InvalidTransitionError{From: b.Status, To: StatusCancelled}
	}

	if reason == "" {
		reason = DefaultCancellationReason
	}

	refund := ComputeRefund(b, now)

	next := b
	next.Status = StatusCancelled
	next.CancellationReason = &reason
	next.CancelledAt = &now
	next.RefundAmount = &refund

	return next, nil
}

// DaysUntilCheckIn rounds partial days up, so anything later today counts as one day.
func DaysUntilCheckIn(b Booking, now time.Time) int {
	// Check-in is a calendar date; anchor it at midnight in now's zone so a
	// date scanned as UTC midnight and one built in the app zone agree.
	y, m, d := b.CheckInDate.Date()
	checkIn := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	return int(math.Ceil(checkIn.Sub(now).Hours() / 24))
}

// RefundRate is 1 at seven or more days before check-in, 0.5 from three days, otherwise 0.
func RefundRate(daysUntilCheckIn int) float64 {
	switch {
	case daysUntilCheckIn >= 7:
		return 1
	case daysUntilCheckIn >= 3:
		return 0.5
	default:
		return 0
	}
}

// ComputeRefund quotes the refund owed if b were cancelled at now, rounded to cents.
func ComputeRefund(b Booking, now time.Time) float64 {
	amount := b.TotalPrice * RefundRate(DaysUntilCheckIn(b, now))

	return math.Round(amount*100) / 100
}
