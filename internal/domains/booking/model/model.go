package model

import (
	"strings"
	"time"

	"hotelops/shared/model"
	"hotelops/shared/timezone"
)

const (
	TableName  = "room_reservations"
	EntityName = "booking"

	FieldID                 = "id"
	FieldHotelID            = "hotel_id"
	FieldRoomID             = "room_id"
	FieldCustomerID         = "customer_id"
	FieldCheckInDate        = "check_in_date"
	FieldCheckOutDate       = "check_out_date"
	FieldGuestCount         = "guest_count"
	FieldStatus             = "status"
	FieldTotalPrice         = "total_price"
	FieldPaymentMethod      = "payment_method"
	FieldPaymentPhone       = "payment_phone"
	FieldPaymentStatus      = "payment_status"
	FieldPaymentReference   = "payment_reference"
	FieldPaidAt             = "paid_at"
	FieldSpecialRequests    = "special_requests"
	FieldCancellationReason = "cancellation_reason"
	FieldCancelledAt        = "cancelled_at"
	FieldRefundAmount       = "refund_amount"
	FieldCheckedInAt        = "checked_in_at"
	FieldCheckedOutAt       = "checked_out_at"
)

const (
	PaymentMethodMobileMoney  = "mobile_money"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCash         = "cash"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

const DefaultCancellationReason = "Not provided"

// Booking is a room reservation. Room and customer columns are read through joins.
type Booking struct {
	ID                 string     `db:"id"`
	HotelID            string     `db:"hotel_id"`
	RoomID             string     `db:"room_id"`
	CustomerID         string     `db:"customer_id"`
	CheckInDate        time.Time  `db:"check_in_date"`
	CheckOutDate       time.Time  `db:"check_out_date"`
	GuestCount         int        `db:"guest_count"`
	Status             Status     `db:"status"`
	TotalPrice         float64    `db:"total_price"`
	PaymentMethod      string     `db:"payment_method"`
	PaymentPhone       *string    `db:"payment_phone"`
	PaymentStatus      string     `db:"payment_status"`
	PaymentReference   *string    `db:"payment_reference"`
	PaidAt             *time.Time `db:"paid_at"`
	SpecialRequests    *string    `db:"special_requests"`
	CancellationReason *string    `db:"cancellation_reason"`
	CancelledAt        *time.Time `db:"cancelled_at"`
	RefundAmount       *float64   `db:"refund_amount"`
	CheckedInAt        *time.Time `db:"checked_in_at"`
	CheckedOutAt       *time.Time `db:"checked_out_at"`
	RoomName           string     `column:"name"        db:"room_name"      table:"rooms"`
	RoomNumber         string     `column:"room_number" db:"room_number"    table:"rooms"`
	CustomerName       string     `column:"name"        db:"customer_name"  table:"customers"`
	CustomerEmail      string     `column:"email"       db:"customer_email" table:"customers"`
	CustomerPhone      *string    `column:"phone"       db:"customer_phone" table:"customers"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = room_reservations.room_id JOIN customers ON customers.id = room_reservations.customer_id"
}

// Nights is the number of nights between check-in and check-out.
func (b Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

func Nights(checkIn, checkOut time.Time) int {
	return timezone.DaysBetween(checkIn, checkOut)
}

// RequiresPaymentPhone reports whether the payment method needs a phone number.
func RequiresPaymentPhone(method string) bool {
	return method == PaymentMethodMobileMoney || method == PaymentMethodBankTransfer
}

// Reference is the short code quoted to guests and used as the payment description.
func (b Booking) Reference() string {
	ref := strings.ReplaceAll(b.ID, "-", "")
	if len(ref) > 8 {
		ref = ref[:8]
	}

	return strings.ToUpper(ref)
}
