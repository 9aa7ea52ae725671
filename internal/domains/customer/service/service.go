package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/customer/model"
	"hotelops/internal/domains/customer/model/dto"
	"hotelops/internal/domains/customer/repository"
	"hotelops/permissions"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
)

const (
	cacheGetCustomer    = "customer:get"
	cacheGetAllCustomer = "customer:gets"
)

// CacheGetAllCustomer is the list cache prefix, cleared by booking creation after a customer upsert.
const CacheGetAllCustomer = cacheGetAllCustomer

type Customer interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.CustomerFilter) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
}

type serviceImpl struct {
	repo  repository.Customer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, customerFilter dto.CustomerFilter) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	customerFilter.HotelID, err = principal.ScopeHotel(customerFilter.HotelID)
	if err != nil {
		return res, err
	}

	req.AllowSort(model.FieldName, gDto.SortDirAsc, model.FieldName, model.FieldEmail, constant.FieldCreatedAt)

	filter := customerFilter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCustomer, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetCustomer, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		customer, getErr := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if getErr != nil {
			log.Error().Err(getErr).Msg("failed to get customer")

			return res, fmt.Errorf("failed to get customer: %w", getErr)
		}

		if customer.ID == constant.Empty {
			return res, failure.NotFound("customer not found") // nolint:wrapcheck
		}

		res.FromModel(customer)

		go func() {
			if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save customer to cache")
			}
		}()
	}

	if !principal.CanAccessHotel(res.HotelID) {
		return dto.CustomerResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}
