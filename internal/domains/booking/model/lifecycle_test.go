package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/domains/booking/model"
)

var allStatuses = []model.Status{
	model.StatusPending,
	model.StatusConfirmed,
	model.StatusCheckedIn,
	model.StatusCheckedOut,
	model.StatusCancelled,
	model.StatusNoShow,
}

func TestStatus_CanTransition(t *testing.T) {
	allowed := map[model.Status][]model.Status{
		model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
		model.StatusConfirmed: {model.StatusCheckedIn, model.StatusCancelled, model.StatusNoShow},
		model.StatusCheckedIn: {model.StatusCheckedOut},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			expected := false

			for _, candidate := range allowed[from] {
				if candidate == to {
					expected = true
				}
			}

			assert.Equal(t, expected, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, model.StatusCheckedOut.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.True(t, model.StatusNoShow.IsTerminal())
	assert.False(t, model.StatusPending.IsTerminal())
	assert.False(t, model.Status("archived").IsTerminal())

	assert.True(t, model.StatusPending.IsInitial())
	assert.True(t, model.StatusConfirmed.IsInitial())
	assert.False(t, model.StatusCheckedIn.IsInitial())

	assert.True(t, model.StatusNoShow.Valid())
	assert.False(t, model.Status("archived").Valid())
}

func TestStatus_AllowedTransitionsIsACopy(t *testing.T) {
	next := model.StatusPending.AllowedTransitions()
	next[0] = model.StatusCheckedOut

	assert.True(t, model.StatusPending.CanTransition(model.StatusConfirmed))
}

func TestBooking_Transition(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("check in stamps the time", func(t *testing.T) {
		booking := model.Booking{ID: "b-1", Status: model.StatusConfirmed}

		next, err := booking.Transition(model.StatusCheckedIn, now)
		require.NoError(t, err)

		assert.Equal(t, model.StatusCheckedIn, next.Status)
		require.NotNil(t, next.CheckedInAt)
		assert.Equal(t, now, *next.CheckedInAt)
		assert.Equal(t, model.StatusConfirmed, booking.Status)
	})

	t.Run("check out", func(t *testing.T) {
		next, err := model.Booking{Status: model.StatusCheckedIn}.Transition(model.StatusCheckedOut, now)
		require.NoError(t, err)

		assert.Equal(t, model.StatusCheckedOut, next.Status)
		assert.NotNil(t, next.CheckedOutAt)
	})

	t.Run("invalid edge leaves booking untouched", func(t *testing.T) {
		booking := model.Booking{Status: model.StatusPending}

		next, err := booking.Transition(model.StatusCheckedIn, now)
		require.Error(t, err)

		assert.ErrorIs(t, err, model.ErrInvalidTransition)
		assert.Equal(t, booking, next)

		var transitionErr *model.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, model.StatusPending, transitionErr.From)
		assert.Equal(t, model.StatusCheckedIn, transitionErr.To)
	})

	t.Run("terminal status cannot be reapplied", func(t *testing.T) {
		for _, status := range []model.Status{model.StatusCheckedOut, model.StatusCancelled, model.StatusNoShow} {
			_, err := model.Booking{Status: status}.Transition(status, now)
			assert.ErrorIs(t, err, model.ErrInvalidTransition, status)
		}
	})

	t.Run("cancel through transition quotes a refund", func(t *testing.T) {
		booking := model.Booking{Status: model.StatusPending, TotalPrice: 200, CheckInDate: now.AddDate(0, 0, 10)}

		next, err := booking.Transition(model.StatusCancelled, now)
		require.NoError(t, err)

		require.NotNil(t, next.RefundAmount)
		assert.InDelta(t, 200, *next.RefundAmount, 0.001)
		assert.Equal(t, model.DefaultCancellationReason, *next.CancellationReason)
	})
}

func TestBooking_Cancel(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	booking := model.Booking{Status: model.StatusConfirmed, TotalPrice: 100, CheckInDate: now.AddDate(0, 0, 5)}

	next, err := booking.Cancel("guest request", now)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCancelled, next.Status)
	assert.Equal(t, "guest request", *next.CancellationReason)
	assert.Equal(t, now, *next.CancelledAt)
	assert.InDelta(t, 50, *next.RefundAmount, 0.001)
	assert.Nil(t, booking.RefundAmount)

	_, err = next.Cancel("again", now)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = model.Booking{Status: model.StatusCheckedIn}.Cancel("", now)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestComputeRefund(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		checkIn  time.Time
		total    float64
		expected float64
	}{
		{name: "ten days out", checkIn: day(11), total: 100, expected: 100},
		{name: "six and a half days rounds up to seven", checkIn: day(8), total: 100, expected: 100},
		{name: "five and a half days out", checkIn: day(7), total: 100, expected: 50},
		{name: "two and a half days rounds up to three", checkIn: day(4), total: 100, expected: 50},
		{name: "one and a half days out", checkIn: day(3), total: 100, expected: 0},
		{name: "check-in already passed", checkIn: time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), total: 100, expected: 0},
		{name: "half of an odd cent amount", checkIn: day(5), total: 99.98, expected: 49.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{CheckInDate: tt.checkIn, TotalPrice: tt.total}

			assert.InDelta(t, tt.expected, model.ComputeRefund(booking, now), 0.001)
		})
	}
}

func TestDaysUntilCheckIn_StoredAndLocalDatesAgree(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, jakarta)

	scanned := model.Booking{CheckInDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), TotalPrice: 100}
	created := model.Booking{CheckInDate: time.Date(2025, 3, 8, 0, 0, 0, 0, jakarta), TotalPrice: 100}

	assert.Equal(t, 7, model.DaysUntilCheckIn(scanned, now))
	assert.Equal(t, 7, model.DaysUntilCheckIn(created, now))
	assert.InDelta(t, model.ComputeRefund(created, now), model.ComputeRefund(scanned, now), 0.001)
}

func TestNights(t *testing.T) {
	checkIn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, model.Nights(checkIn, checkIn.AddDate(0, 0, 3)))
	assert.Equal(t, 1, model.Booking{CheckInDate: checkIn, CheckOutDate: checkIn.AddDate(0, 0, 1)}.Nights())
}

func TestRequiresPaymentPhone(t *testing.T) {
	assert.True(t, model.RequiresPaymentPhone(model.PaymentMethodMobileMoney))
	assert.True(t, model.RequiresPaymentPhone(model.PaymentMethodBankTransfer))
	assert.False(t, model.RequiresPaymentPhone(model.PaymentMethodCash))
}

func TestBooking_Reference(t *testing.T) {
	assert.Equal(t, "3F2A9C1B", model.Booking{ID: "3f2a9c1b-77aa-4d1e-9a0b-1c2d3e4f5a6b"}.Reference())
	assert.Equal(t, "AB", model.Booking{ID: "ab"}.Reference())
}
