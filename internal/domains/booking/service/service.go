package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/booking/model"
	"hotelops/internal/domains/booking/model/dto"
	"hotelops/internal/domains/booking/repository"
	customerRepo "hotelops/internal/domains/customer/repository"
	customerService "hotelops/internal/domains/customer/service"
	notificationModel "hotelops/internal/domains/notification/model"
	notificationService "hotelops/internal/domains/notification/service"
	roomModel "hotelops/internal/domains/room/model"
	roomRepo "hotelops/internal/domains/room/repository"
	"hotelops/permissions"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	// Shared with analytics so summaries refresh when bookings change.
	CacheAnalytics = "analytics:summary"

	roomUnavailable = "room is not available for the selected dates"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Transition(ctx context.Context, req dto.TransitionRequest, id string) (dto.BookingResponse, error)
	RefundQuote(ctx context.Context, id string) (dto.RefundQuoteResponse, error)
	CompletePayment(ctx context.Context, req dto.CompletePaymentRequest, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	dispatcher   notificationService.Dispatcher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	now          func() time.Time
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	dispatcher notificationService.Dispatcher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		dispatcher:   dispatcher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		now:          timezone.Now,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	now := s.now()

	checkIn, checkOut, err := req.Stay(now)
	if err != nil {
		return res, err
	}

	if model.RequiresPaymentPhone(req.PaymentMethod) && (req.PaymentPhone == nil || *req.PaymentPhone == constant.Empty) {
		return res, failure.BadRequestFromString("payment_phone is required for " + req.PaymentMethod) // nolint:wrapcheck
	}

	room, err := s.room(ctx, principal, req.RoomID)
	if err != nil {
		return res, err
	}

	if req.GuestCount > room.MaxCapacity {
		return res, failure.BadRequestFromString(fmt.Sprintf("guest_count exceeds room max capacity of %d", room.MaxCapacity)) // nolint:wrapcheck
	}

	overlap, err := s.repo.HasOverlap(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlap {
		return res, failure.Conflict(roomUnavailable) // nolint:wrapcheck
	}

	customer := req.Customer.ToModel(room.HotelID, principal.UserID, now)

	customerID, err := s.customerRepo.Upsert(ctx, customer)
	if err != nil {
		log.Error().Err(err).Msg("failed to upsert customer")

		return res, fmt.Errorf("failed to upsert customer: %w", err)
	}

	booking := req.ToModel(dto.BookingParams{
		HotelID:    room.HotelID,
		CustomerID: customerID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		BasePrice:  room.BasePrice,
		Status:     req.InitialStatus(model.Status(s.cfg.App.Booking.DefaultStatus)),
		User:       principal.UserID,
		Now:        now,
	})

	if err = s.repo.Insert(ctx, booking); err != nil {
		if fail := failure.FromPostgres(err, roomUnavailable); fail != nil {
			return res, fail
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.RoomName = room.Name
	booking.RoomNumber = room.RoomNumber
	booking.CustomerName = customer.Name
	booking.CustomerEmail = customer.Email
	booking.CustomerPhone = customer.Phone

	if booking.Status == model.StatusConfirmed {
		s.dispatcher.Dispatch(ctx, confirmationNotification(booking))
	}

	s.invalidateLists(ctx)

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, customerService.CacheGetAllCustomer)
	}()

	res.FromModel(booking)

	return res, nil
}

// room loads a room the caller may book.
func (s *serviceImpl) room(ctx context.Context, principal permissions.Principal, id string) (roomModel.Room, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !principal.CanAccessHotel(room.HotelID) {
		return room, failure.ResourceRestrictedError
	}

	return room, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, bookingFilter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	bookingFilter.HotelID, err = principal.ScopeHotel(bookingFilter.HotelID)
	if err != nil {
		return res, err
	}

	// Joined tables share column names, so sortable columns are limited to unambiguous ones.
	req.AllowSort(model.FieldCheckInDate, gDto.SortDirAsc, model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldTotalPrice)

	filter := bookingFilter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, loadErr := s.load(ctx, id)
		if loadErr != nil {
			return res, loadErr
		}

		res.FromModel(booking)

		go func() {
			if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if !principal.CanAccessHotel(res.HotelID) {
		return dto.BookingResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// authorize reads the current booking from the database, bypassing the cache.
func (s *serviceImpl) authorize(ctx context.Context, id string) (model.Booking, permissions.Principal, error) {
	principal, err := permissions.Require(ctx)
	if err != nil {
		return model.Booking{}, principal, err
	}

	booking, err := s.load(ctx, id)
	if err != nil {
		return booking, principal, err
	}

	if !principal.CanAccessHotel(booking.HotelID) {
		return booking, principal, failure.ResourceRestrictedError
	}

	return booking, principal, nil
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	checkIn, checkOut, err := dto.ParseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	room, err := s.room(ctx, principal, req.RoomID)
	if err != nil {
		return res, err
	}

	overlap, err := s.repo.HasOverlap(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return res, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	nights := model.Nights(checkIn, checkOut)

	res = dto.AvailabilityResponse{
		RoomID:     room.ID,
		Available:  !overlap,
		Nights:     nights,
		TotalPrice: float64(nights) * room.BasePrice,
	}

	return res, nil
}

// Transition moves the booking along its lifecycle. The write only lands if the status is still
// the one the transition was computed from.
func (s *serviceImpl) Transition(ctx context.Context, req dto.TransitionRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, principal, err := s.authorize(ctx, id)
	if err != nil {
		return res, err
	}

	var next model.Booking

	if req.Status == model.StatusCancelled {
		reason := constant.Empty
		if req.Reason != nil {
			reason = *req.Reason
		}

		next, err = booking.Cancel(reason, s.now())
	} else {
		next, err = booking.Transition(req.Status, s.now())
	}

	if errors.Is(err, model.ErrInvalidTransition) {
		return res, failure.Conflict(err.Error()) // nolint:wrapcheck
	}

	if err != nil {
		return res, fmt.Errorf("failed to transition booking: %w", err)
	}

	fields := transitionFields(next, principal.UserID, s.now())

	if err = s.compareAndSet(ctx, fields, id, model.FieldStatus, string(booking.Status)); err != nil {
		return res, err
	}

	switch next.Status {
	case model.StatusCancelled:
		s.dispatcher.Dispatch(ctx, cancellationNotification(next))
	case model.StatusConfirmed:
		s.dispatcher.Dispatch(ctx, confirmationNotification(next))
	}

	s.invalidateBooking(ctx, id)

	res.FromModel(next)

	return res, nil
}

func transitionFields(next model.Booking, user string, now time.Time) map[string]any {
	fields := map[string]any{
		model.FieldStatus:        string(next.Status),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	switch next.Status {
	case model.StatusCheckedIn:
		fields[model.FieldCheckedInAt] = next.CheckedInAt
	case model.StatusCheckedOut:
		fields[model.FieldCheckedOutAt] = next.CheckedOutAt
	case model.StatusCancelled:
		fields[model.FieldCancellationReason] = next.CancellationReason
		fields[model.FieldCancelledAt] = next.CancelledAt
		fields[model.FieldRefundAmount] = next.RefundAmount
	}

	return fields
}

// compareAndSet updates the booking only while field still holds expected.
func (s *serviceImpl) compareAndSet(ctx context.Context, fields map[string]any, id, field, expected string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.TableName},
			gDto.Filter{ArgName: "expected_" + field, Field: field, Operator: gDto.FilterOperatorEq, Value: expected, Table: model.TableName},
		},
	}

	affected, err := s.repo.UpdateAffected(ctx, fields, filter)
	if err != nil {
		if fail := failure.FromPostgres(err, roomUnavailable); fail != nil {
			return fail
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return failure.Conflict("booking was modified by another request") // nolint:wrapcheck
	}

	return nil
}

// RefundQuote prices a cancellation at the current time without changing the booking.
func (s *serviceImpl) RefundQuote(ctx context.Context, id string) (res dto.RefundQuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefundQuote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, _, err := s.authorize(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.Status.CanTransition(model.StatusCancelled) {
		return res, failure.Conflict((&model.InvalidTransitionError{From: booking.Status, To: model.StatusCancelled}).Error()) // nolint:wrapcheck
	}

	res.FromModel(booking, s.now())

	return res, nil
}

func (s *serviceImpl) CompletePayment(ctx context.Context, req dto.CompletePaymentRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompletePayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, principal, err := s.authorize(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status == model.StatusCancelled || booking.Status == model.StatusNoShow {
		return res, failure.Conflict(fmt.Sprintf("cannot complete payment of a %s booking", booking.Status)) // nolint:wrapcheck
	}

	if booking.PaymentStatus == model.PaymentStatusCompleted {
		return res, failure.Conflict("payment already completed") // nolint:wrapcheck
	}

	now := s.now()

	fields := map[string]any{
		model.FieldPaymentStatus:    model.PaymentStatusCompleted,
		model.FieldPaymentReference: req.PaymentReference,
		model.FieldPaidAt:           now,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    principal.UserID,
	}

	if err = s.compareAndSet(ctx, fields, id, model.FieldPaymentStatus, booking.PaymentStatus); err != nil {
		return res, err
	}

	booking.PaymentStatus = model.PaymentStatusCompleted
	booking.PaymentReference = &req.PaymentReference
	booking.PaidAt = &now

	s.dispatcher.Dispatch(ctx, paymentNotification(booking))

	s.invalidateBooking(ctx, id)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, CacheAnalytics)
	}()
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()

	s.invalidateLists(ctx)
}

func stayVariables(booking model.Booking) map[string]string {
	return map[string]string{
		notificationModel.VarGuestName:        booking.CustomerName,
		notificationModel.VarRoomName:         booking.RoomName,
		notificationModel.VarCheckInDate:      timezone.FormatDate(booking.CheckInDate),
		notificationModel.VarCheckOutDate:     timezone.FormatDate(booking.CheckOutDate),
		notificationModel.VarTotalAmount:      notificationModel.FormatAmount(booking.TotalPrice),
		notificationModel.VarBookingReference: booking.Reference(),
	}
}

func confirmationNotification(booking model.Booking) notificationModel.Notification {
	vars := stayVariables(booking)

	phone := constant.Empty
	if booking.PaymentPhone != nil {
		phone = *booking.PaymentPhone
	}

	vars[notificationModel.VarPaymentInstructions] = notificationModel.PaymentInstructions(
		booking.PaymentMethod, phone, booking.TotalPrice, booking.Reference())

	return notificationModel.Notification{
		Type:      notificationModel.TypeBookingConfirmation,
		Recipient: booking.CustomerEmail,
		Variables: vars,
	}
}

func cancellationNotification(booking model.Booking) notificationModel.Notification {
	vars := stayVariables(booking)

	if booking.CancellationReason != nil {
		vars[notificationModel.VarCancellationReason] = *booking.CancellationReason
	}

	if booking.RefundAmount != nil {
		vars[notificationModel.VarRefundAmount] = notificationModel.FormatAmount(*booking.RefundAmount)
	}

	return notificationModel.Notification{
		Type:      notificationModel.TypeBookingCancellation,
		Recipient: booking.CustomerEmail,
		Variables: vars,
	}
}

func paymentNotification(booking model.Booking) notificationModel.Notification {
	vars := stayVariables(booking)
	vars[notificationModel.VarAmount] = notificationModel.FormatAmount(booking.TotalPrice)
	vars[notificationModel.VarPaymentMethod] = booking.PaymentMethod

	if booking.PaymentReference != nil {
		vars[notificationModel.VarTransactionID] = *booking.PaymentReference
	}

	if booking.PaidAt != nil {
		vars[notificationModel.VarDate] = timezone.Format(*booking.PaidAt, constant.DateOnlyFormat)
	}

	return notificationModel.Notification{
		Type:      notificationModel.TypePaymentConfirmation,
		Recipient: booking.CustomerEmail,
		Variables: vars,
	}
}
