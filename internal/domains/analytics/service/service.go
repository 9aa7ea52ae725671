package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/analytics/model"
	"hotelops/internal/domains/analytics/model/dto"
	"hotelops/internal/domains/analytics/repository"
	bookingService "hotelops/internal/domains/booking/service"
	"hotelops/permissions"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

type Analytics interface {
	Summary(ctx context.Context, req dto.SummaryRequest) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	repo  repository.Analytics
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	now   func() time.Time
}

func New(repo repository.Analytics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		now:   timezone.Now,
	}
}

// Summary reports booking and room figures of one hotel over the requested period.
func (s *serviceImpl) Summary(ctx context.Context, req dto.SummaryRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	hotelID, err := principal.ScopeHotel(req.HotelID)
	if err != nil {
		return res, err
	}

	if hotelID == constant.Empty {
		return res, failure.BadRequestFromString("hotel_id is required") // nolint:wrapcheck
	}

	period := req.Period
	if period == constant.Empty {
		period = model.DefaultPeriod
	}

	days, ok := model.PeriodDays(period)
	if !ok {
		return res, failure.BadRequestFromString("period must be one of 7d, 30d, 90d, 1y") // nolint:wrapcheck
	}

	window := model.WindowEnding(timezone.ToAppTime(s.now()), days)

	cacheKey := shared.BuildCacheKey(bookingService.CacheAnalytics, hotelID, period, timezone.FormatDate(window.From))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for analytics summary")

		return res, nil
	}

	stats, err := s.repo.BookingStats(ctx, hotelID, window)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking stats")

		return res, fmt.Errorf("failed to get booking stats: %w", err)
	}

	bookings, err := s.repo.BookingsByStatus(ctx, hotelID, window)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings by status")

		return res, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	rooms, err := s.repo.RoomsByStatus(ctx, hotelID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms by status")

		return res, fmt.Errorf("failed to count rooms by status: %w", err)
	}

	res.FromModel(dto.SummaryParams{
		HotelID:  hotelID,
		Period:   period,
		Window:   window,
		Stats:    stats,
		Bookings: bookings,
		Rooms:    rooms,
	})

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save analytics summary to cache")
		}
	}()

	return res, nil
}
