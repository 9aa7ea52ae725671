package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/analytics/model"
	"hotelops/shared/constant"
	"hotelops/shared/logger"
	"hotelops/shared/timezone"
)

type Analytics interface {
	BookingStats(ctx context.Context, hotelID string, window model.Window) (model.BookingStats, error)
	BookingsByStatus(ctx context.Context, hotelID string, window model.Window) ([]model.StatusCount, error)
	RoomsByStatus(ctx context.Context, hotelID string) ([]model.StatusCount, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Analytics {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// Cancelled and no-show bookings count towards totals but not towards revenue or nights.
const bookingStatsQuery = `SELECT
	COUNT(*) AS total_bookings,
	COALESCE(SUM(total_price) FILTER (WHERE status NOT IN ('cancelled', 'no_show')), 0) AS revenue,
	COALESCE(SUM(check_out_date - check_in_date) FILTER (WHERE status NOT IN ('cancelled', 'no_show')), 0) AS stay_nights,
	COALESCE(SUM(LEAST(check_out_date, CAST(:to_date AS date)) - GREATEST(check_in_date, CAST(:from_date AS date)))
		FILTER (WHERE status NOT IN ('cancelled', 'no_show')), 0) AS occupied_nights
FROM room_reservations
WHERE hotel_id = :hotel_id
	AND check_in_date < :to_date
	AND check_out_date > :from_date`

const bookingsByStatusQuery = `SELECT status, COUNT(*) AS count
FROM room_reservations
WHERE hotel_id = :hotel_id
	AND check_in_date < :to_date
	AND check_out_date > :from_date
GROUP BY status
ORDER BY status`

const roomsByStatusQuery = `SELECT status, COUNT(*) AS count
FROM rooms
WHERE hotel_id = :hotel_id
GROUP BY status
ORDER BY status`

func windowArgs(hotelID string, window model.Window) map[string]any {
	return map[string]any{
		"hotel_id":  hotelID,
		"from_date": timezone.FormatDate(window.From),
		"to_date":   timezone.FormatDate(window.To),
	}
}

func (r *repositoryImpl) BookingStats(ctx context.Context, hotelID string, window model.Window) (res model.BookingStats, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.BookingStats")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, bookingStatsQuery)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, bookingStatsQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &res, windowArgs(hotelID, window)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get booking stats (%s): %w", model.EntityName, err)
	}

	return res, nil
}

func (r *repositoryImpl) BookingsByStatus(ctx context.Context, hotelID string, window model.Window) ([]model.StatusCount, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.BookingsByStatus")
	defer scope.End()

	return r.countByStatus(ctx, scope, bookingsByStatusQuery, windowArgs(hotelID, window))
}

func (r *repositoryImpl) RoomsByStatus(ctx context.Context, hotelID string) ([]model.StatusCount, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.RoomsByStatus")
	defer scope.End()

	return r.countByStatus(ctx, scope, roomsByStatusQuery, map[string]any{"hotel_id": hotelID})
}

func (r *repositoryImpl) countByStatus(ctx context.Context, scope otel.Scope, query string, args map[string]any) ([]model.StatusCount, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	res := []model.StatusCount{}

	if err = prepare.SelectContext(ctx, &res, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count by status (%s): %w", model.EntityName, err)
	}

	return res, nil
}
