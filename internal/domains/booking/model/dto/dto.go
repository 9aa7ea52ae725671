package dto

import (
	"time"

	"github.com/google/uuid"

	"hotelops/internal/domains/booking/model"
	customerDto "hotelops/internal/domains/customer/model/dto"
	"hotelops/shared"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	gModel "hotelops/shared/model"
	"hotelops/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID          string                      `json:"room_id"                    validate:"required,uuid"`
	CheckInDate     string                      `json:"check_in_date"              validate:"required,date"`
	CheckOutDate    string                      `json:"check_out_date"             validate:"required,date"`
	GuestCount      int                         `json:"guest_count"                validate:"required,min=1"`
	Customer        customerDto.CustomerRequest `json:"customer"                   validate:"required"`
	SpecialRequests *string                     `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
	PaymentMethod   string                      `json:"payment_method"             validate:"required,oneof=mobile_money bank_transfer cash"`
	PaymentPhone    *string                     `json:"payment_phone,omitempty"    validate:"omitempty,max=30"`
	Status          model.Status                `json:"status,omitempty"           validate:"omitempty,oneof=pending confirmed"`
}

// Stay parses and checks the requested dates against today in the application timezone.
func (c *CreateBookingRequest) Stay(now time.Time) (checkIn, checkOut time.Time, err error) {
	checkIn, checkOut, err = ParseStay(c.CheckInDate, c.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, err
	}

	today := timezone.StartOfDay(now)

	if checkIn.Before(today) {
		return checkIn, checkOut, failure.BadRequestFromString("check_in_date cannot be in the past") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// ParseStay parses a date-only stay and requires check-in strictly before check-out.
func ParseStay(checkInDate, checkOutDate string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(checkInDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in_date must be YYYY-MM-DD") // nolint:wrapcheck
	}

	checkOut, err = timezone.ParseDate(checkOutDate)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must be YYYY-MM-DD") // nolint:wrapcheck
	}

	if !checkIn.Before(checkOut) {
		return checkIn, checkOut, failure.BadRequestFromString("check_out_date must be after check_in_date") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// InitialStatus falls back to def when the request leaves the status empty.
func (c *CreateBookingRequest) InitialStatus(def model.Status) model.Status {
	if c.Status != "" {
		return c.Status
	}

	if def.IsInitial() {
		return def
	}

	return model.StatusConfirmed
}

type BookingParams struct {
	HotelID    string
	CustomerID string
	CheckIn    time.Time
	CheckOut   time.Time
	BasePrice  float64
	Status     model.Status
	User       string
	Now        time.Time
}

func (c *CreateBookingRequest) ToModel(params BookingParams) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		HotelID:         params.HotelID,
		RoomID:          c.RoomID,
		CustomerID:      params.CustomerID,
		CheckInDate:     params.CheckIn,
		CheckOutDate:    params.CheckOut,
		GuestCount:      c.GuestCount,
		Status:          params.Status,
		TotalPrice:      float64(model.Nights(params.CheckIn, params.CheckOut)) * params.BasePrice,
		PaymentMethod:   c.PaymentMethod,
		PaymentPhone:    c.PaymentPhone,
		PaymentStatus:   model.PaymentStatusPending,
		SpecialRequests: c.SpecialRequests,
		Metadata:        gModel.NewMetadata(params.User, params.Now),
	}
}

type AvailabilityRequest struct {
	RoomID       string `json:"room_id"        validate:"required,uuid"`
	CheckInDate  string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string `json:"check_out_date" validate:"required,date"`
}

type AvailabilityResponse struct {
	RoomID     string  `json:"room_id"`
	Available  bool    `json:"available"`
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"total_price"`
}

type TransitionRequest struct {
	Status model.Status `json:"status"           validate:"required,oneof=pending confirmed checked_in checked_out cancelled no_show"`
	Reason *string      `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type CompletePaymentRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required,max=100"`
}

type RefundQuoteResponse struct {
	BookingID        string  `json:"booking_id"`
	TotalPrice       float64 `json:"total_price"`
	DaysUntilCheckIn int     `json:"days_until_check_in"`
	RefundRate       float64 `json:"refund_rate"`
	RefundAmount     float64 `json:"refund_amount"`
}

func (r *RefundQuoteResponse) FromModel(booking model.Booking, now time.Time) {
	days := model.DaysUntilCheckIn(booking, now)

	r.BookingID = booking.ID
	r.TotalPrice = booking.TotalPrice
	r.DaysUntilCheckIn = days
	r.RefundRate = model.RefundRate(days)
	r.RefundAmount = model.ComputeRefund(booking, now)
}

type BookingFilter struct {
	HotelID    string
	Status     string
	RoomID     string
	CustomerID string
}

func (f BookingFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	fields := [][2]string{
		{model.FieldHotelID, f.HotelID},
		{model.FieldStatus, f.Status},
		{model.FieldRoomID, f.RoomID},
		{model.FieldCustomerID, f.CustomerID},
	}

	for _, field := range fields {
		if field[1] == "" {
			continue
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    field[0],
			Operator: gDto.FilterOperatorEq,
			Value:    field[1],
			Table:    model.TableName,
		})
	}

	return filter
}

type BookingResponse struct {
	ID                 string       `json:"id"`
	HotelID            string       `json:"hotel_id"`
	RoomID             string       `json:"room_id"`
	RoomName           string       `json:"room_name"`
	RoomNumber         string       `json:"room_number"`
	CustomerID         string       `json:"customer_id"`
	CustomerName       string       `json:"customer_name"`
	CustomerEmail      string       `json:"customer_email"`
	CustomerPhone      *string      `json:"customer_phone,omitempty"`
	CheckInDate        string       `json:"check_in_date"`
	CheckOutDate       string       `json:"check_out_date"`
	Nights             int          `json:"nights"`
	GuestCount         int          `json:"guest_count"`
	Status             model.Status `json:"status"`
	TotalPrice         float64      `json:"total_price"`
	PaymentMethod      string       `json:"payment_method"`
	PaymentPhone       *string      `json:"payment_phone,omitempty"`
	PaymentStatus      string       `json:"payment_status"`
	PaymentReference   *string      `json:"payment_reference,omitempty"`
	PaidAt             *time.Time   `json:"paid_at,omitempty"`
	SpecialRequests    *string      `json:"special_requests,omitempty"`
	CancellationReason *string      `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time   `json:"cancelled_at,omitempty"`
	RefundAmount       *float64     `json:"refund_amount,omitempty"`
	CheckedInAt        *time.Time   `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time   `json:"checked_out_at,omitempty"`
	AllowedStatuses    []string     `json:"allowed_statuses"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.RoomNumber = model.RoomNumber
	r.CustomerID = model.CustomerID
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.CustomerPhone = model.CustomerPhone
	r.CheckInDate = timezone.FormatDate(model.CheckInDate)
	r.CheckOutDate = timezone.FormatDate(model.CheckOutDate)
	r.Nights = model.Nights()
	r.GuestCount = model.GuestCount
	r.Status = model.Status
	r.TotalPrice = model.TotalPrice
	r.PaymentMethod = model.PaymentMethod
	r.PaymentPhone = model.PaymentPhone
	r.PaymentStatus = model.PaymentStatus
	r.PaymentReference = model.PaymentReference
	r.PaidAt = model.PaidAt
	r.SpecialRequests = model.SpecialRequests
	r.CancellationReason = model.CancellationReason
	r.CancelledAt = model.CancelledAt
	r.RefundAmount = model.RefundAmount
	r.CheckedInAt = model.CheckedInAt
	r.CheckedOutAt = model.CheckedOutAt

	r.AllowedStatuses = []string{}
	for _, status := range model.Status.AllowedTransitions() {
		r.AllowedStatuses = append(r.AllowedStatuses, string(status))
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
