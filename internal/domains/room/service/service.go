package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/infras/s3"
	"hotelops/internal/domains/room/model"
	"hotelops/internal/domains/room/model/dto"
	"hotelops/internal/domains/room/repository"
	"hotelops/permissions"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/timezone"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"

	roomNumberTaken = "room number already exists in this hotel"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.RoomFilter) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (string, error)
	RemovePhoto(ctx context.Context, req dto.RemovePhotoRequest, id string) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
	now   func() time.Time
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
		now:   timezone.Now,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
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

	room := req.ToModel(hotelID, principal.UserID, s.now())

	if err = s.repo.Insert(ctx, room); err != nil {
		if fail := failure.FromPostgres(err, roomNumberTaken); fail != nil {
			return res, fail
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, roomFilter dto.RoomFilter) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	roomFilter.HotelID, err = principal.ScopeHotel(roomFilter.HotelID)
	if err != nil {
		return res, err
	}

	req.AllowSort(model.FieldRoomNumber, gDto.SortDirAsc,
		model.FieldRoomNumber, model.FieldName, model.FieldBasePrice, model.FieldFloorNumber, constant.FieldCreatedAt)

	filter := roomFilter.ToFilterGroup()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		room, err := s.load(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(room)

		go func() {
			if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save room to cache")
			}
		}()
	}

	if !principal.CanAccessHotel(res.HotelID) {
		return dto.RoomResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

// authorize loads the room and checks that the caller may act on its hotel.
func (s *serviceImpl) authorize(ctx context.Context, id string) (model.Room, permissions.Principal, error) {
	principal, err := permissions.Require(ctx)
	if err != nil {
		return model.Room{}, principal, err
	}

	room, err := s.load(ctx, id)
	if err != nil {
		return room, principal, err
	}

	if !principal.CanAccessHotel(room.HotelID) {
		return room, principal, failure.ResourceRestrictedError
	}

	return room, principal, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	room, principal, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if !req.CapacityWithin(room) {
		return failure.BadRequestFromString("capacity cannot exceed max_capacity") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, principal.UserID)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if fail := failure.FromPostgres(err, roomNumberTaken); fail != nil {
			return fail
		}

		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateRoom(ctx, id)

	return nil
}

// UpdateStatus changes the operational status only; bookings never drive it.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, principal, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, principal.UserID), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room status")

		return fmt.Errorf("failed to update room status: %w", err)
	}

	s.invalidateRoom(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, _, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if fail := failure.FromPostgres(err, "room has bookings"); fail != nil {
			return fail
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, url := range room.Photos {
			if key := s.s3.GetObjectKeyFromURL(url); key != constant.Empty {
				if err := s.s3.DeleteFile(c, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("failed to delete room photo")
				}
			}
		}
	}()

	s.invalidateRoom(ctx, id)

	return nil
}

func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadPhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, principal, err := s.authorize(ctx, id)
	if err != nil {
		return url, err
	}

	fileName := uuid.NewString()
	if ext := strings.ToLower(strings.TrimPrefix(path.Ext(req.Photo.Filename), ".")); ext != constant.Empty {
		fileName = fmt.Sprintf("%s.%s", fileName, ext)
	}

	directory := model.PhotoDirectory(id)

	url, err = s.s3.UploadFile(ctx, directory, req.PhotoFile, req.Photo, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room photo")

		return constant.Empty, fmt.Errorf("failed to upload room photo: %w", err)
	}

	if err = s.repo.AppendPhoto(ctx, id, url, principal.UserID); err != nil {
		if delErr := s.s3.DeleteFile(ctx, path.Join(directory, fileName)); delErr != nil {
			log.Warn().Err(delErr).Msg("failed to clean up uploaded photo")
		}

		return constant.Empty, fmt.Errorf("failed to save room photo: %w", err)
	}

	s.invalidateRoom(ctx, id)

	return url, nil
}

func (s *serviceImpl) RemovePhoto(ctx context.Context, req dto.RemovePhotoRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemovePhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, principal, err := s.authorize(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.repo.RemovePhoto(ctx, id, req.URL, principal.UserID)
	if err != nil {
		return fmt.Errorf("failed to remove room photo: %w", err)
	}

	if !removed {
		return failure.NotFound("photo not found") // nolint:wrapcheck
	}

	if key := s.s3.GetObjectKeyFromURL(req.URL); key != constant.Empty {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete room photo object")
		}
	}

	s.invalidateRoom(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}

func (s *serviceImpl) invalidateRoom(ctx context.Context, id string) {
	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}
	}()

	s.invalidateLists(ctx)
}
