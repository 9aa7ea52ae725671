package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/internal/domains/feature/model"
	"hotelops/internal/domains/feature/model/dto"
	"hotelops/internal/domains/feature/repository"
	"hotelops/permissions"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

const cacheGetAllFeature = "room_feature:gets"

type Feature interface {
	GetAll(ctx context.Context) ([]dto.FeatureResponse, error)
	Create(ctx context.Context, req dto.CreateFeatureRequest) (dto.FeatureResponse, error)
	Update(ctx context.Context, req dto.UpdateFeatureRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Feature
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	now   func() time.Time
}

func New(repo repository.Feature, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Feature {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		now:   timezone.Now,
	}
}

// GetAll lists active features grouped by category, then by name.
func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.FeatureResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAllFeature, "active")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room features")

		return res, nil
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldCategory + ", " + model.FieldName,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: true},
		},
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room features")

		return res, fmt.Errorf("failed to get room features: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room features to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeatureRequest) (res dto.FeatureResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	feature := req.ToModel(principal.UserID, s.now())

	if err = s.repo.Insert(ctx, feature); err != nil {
		if fail := failure.FromPostgres(err, "room feature already exists"); fail != nil {
			return res, fail
		}

		log.Error().Err(err).Msg("failed to create room feature")

		return res, fmt.Errorf("failed to create room feature: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllFeature)
	}()

	res.FromModel(feature)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFeatureRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateFeatureRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	principal, err := permissions.Require(ctx)
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room feature exists")

		return fmt.Errorf("failed to check if room feature exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room feature not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, principal.UserID), filter); err != nil {
		if fail := failure.FromPostgres(err, "room feature already exists"); fail != nil {
			return fail
		}

		log.Error().Err(err).Msg("failed to update room feature")

		return fmt.Errorf("failed to update room feature: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllFeature)
	}()

	return nil
}
