package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	hotelModel "hotelops/internal/domains/hotel/model"
	hotelRepo "hotelops/internal/domains/hotel/repository"
	"hotelops/internal/domains/profile/model"
	"hotelops/internal/domains/profile/model/dto"
	"hotelops/internal/domains/profile/repository"
	"hotelops/permissions"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	gModel "hotelops/shared/model"
	"hotelops/shared/timezone"
)

const (
	cacheGetProfile    = "profile:get"
	cacheGetAllProfile = "profile:gets"
	cachePrincipal     = "profile:principal"
)

type Profile interface {
	Me(ctx context.Context) (dto.MeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, hotelID string) (dto.GetProfilesResponse, error)
	Get(ctx context.Context, id string) (dto.ProfileResponse, error)
	UpdateRole(ctx context.Context, req dto.UpdateRoleRequest, id string) error
	AssignHotel(ctx context.Context, req dto.AssignHotelRequest, id string) error
	GetStaffPermissions(ctx context.Context, id string) (dto.StaffPermissionsResponse, error)
	UpdateStaffPermissions(ctx context.Context, req dto.StaffPermissionsRequest, id string) error
	LoadPrincipal(ctx context.Context, userID string) (permissions.Principal, error)
}

type serviceImpl struct {
	repo      repository.Profile
	staffRepo repository.StaffPermission
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	now       func() time.Time
}

func New(
	repo repository.Profile,
	staffRepo repository.StaffPermission,
	hotelRepo hotelRepo.Hotel,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Profile {
	return &serviceImpl{
		repo:      repo,
		staffRepo: staffRepo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		now:       timezone.Now,
	}
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	profile, err := s.getProfile(ctx, principal.UserID)
	if err != nil {
		return res, err
	}

	res.ProfileResponse = profile
	res.Capabilities = principal.Capabilities

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, hotelID string) (res dto.GetProfilesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	hotelID, err = principal.ScopeHotel(hotelID)
	if err != nil {
		return res, err
	}

	req.AllowSort(constant.FieldCreatedAt, gDto.SortDirDesc, constant.FieldCreatedAt, model.FieldRole, model.FieldFullName)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if hotelID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    hotelID,
			Table:    model.TableName,
		})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProfile, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profiles")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count profiles")

		return res, fmt.Errorf("failed to count profiles: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profiles")

		return res, fmt.Errorf("failed to get profiles: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profiles to cache")
		}
	}()

	return res, nil
}

// Get returns a profile visible to the caller: their own, one in their hotel, or any for a super admin.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return res, err
	}

	res, err = s.getProfile(ctx, id)
	if err != nil {
		return res, err
	}

	if principal.UserID == id || principal.Capabilities.IsSuperAdmin {
		return res, nil
	}

	if res.HotelID == nil || !principal.CanAccessHotel(*res.HotelID) {
		return dto.ProfileResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

func (s *serviceImpl) getProfile(ctx context.Context, id string) (res dto.ProfileResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetProfile, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for profile")

		return res, nil
	}

	profile, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("profile not found") // nolint:wrapcheck
	}

	res.FromModel(profile)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save profile to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateRole(ctx context.Context, req dto.UpdateRoleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRole")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return err
	}

	if !principal.Capabilities.IsSuperAdmin {
		return failure.ResourceRestrictedError
	}

	if !permissions.ValidRole(req.Role) {
		return failure.BadRequestFromString(fmt.Sprintf("invalid role %q", req.Role)) // nolint:wrapcheck
	}

	var staff *model.StaffPermission
	if req.Role == constant.RoleStaff {
		staff = &model.StaffPermission{
			ID:        uuid.NewString(),
			ProfileID: id,
			Metadata:  gModel.NewMetadata(principal.UserID, s.now()),
		}
	}

	affected, err := s.repo.ChangeRole(ctx, id, shared.TransformFields(req, principal.UserID), staff)
	if err != nil {
		log.Error().Err(err).Msg("failed to update profile role")

		return fmt.Errorf("failed to update profile role: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("profile not found") // nolint:wrapcheck
	}

	s.invalidateProfile(ctx, id)

	return nil
}

func (s *serviceImpl) AssignHotel(ctx context.Context, req dto.AssignHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, err := permissions.Require(ctx)
	if err != nil {
		return err
	}

	if !principal.Capabilities.IsSuperAdmin && !(principal.Capabilities.IsHotelAdmin && principal.HotelID == req.HotelID) {
		return failure.ResourceRestrictedError
	}

	exist, err := s.hotelRepo.Exist(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if hotel exists")

		return fmt.Errorf("failed to check if hotel exists: %w", err)
	}

	if !exist {
		return failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	affected, err := s.repo.UpdateAffected(ctx, shared.TransformFields(req, principal.UserID), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to assign hotel")

		return fmt.Errorf("failed to assign hotel: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("profile not found") // nolint:wrapcheck
	}

	s.invalidateProfile(ctx, id)

	return nil
}

// staffTarget loads a staff profile the caller may manage.
func (s *serviceImpl) staffTarget(ctx context.Context, id string) (model.Profile, error) {
	principal, err := permissions.Require(ctx)
	if err != nil {
		return model.Profile{}, err
	}

	if !principal.Capabilities.IsSuperAdmin && !principal.Capabilities.IsHotelAdmin {
		return model.Profile{}, failure.ResourceRestrictedError
	}

	profile, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return profile, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return profile, failure.NotFound("profile not found") // nolint:wrapcheck
	}

	if profile.Role != constant.RoleStaff {
		return profile, failure.BadRequestFromString("profile is not a staff member") // nolint:wrapcheck
	}

	if !principal.CanAccessHotel(profile.HotelIDValue()) {
		return profile, failure.ResourceRestrictedError
	}

	return profile, nil
}

func (s *serviceImpl) GetStaffPermissions(ctx context.Context, id string) (res dto.StaffPermissionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStaffPermissions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.staffTarget(ctx, id); err != nil {
		return res, err
	}

	record, err := s.staffRepo.Get(ctx, shared.FilterByID(id, model.StaffFieldProfileID, model.StaffTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff permissions")

		return res, fmt.Errorf("failed to get staff permissions: %w", err)
	}

	// A staff profile without a record has no grants.
	record.ProfileID = id
	res.FromModel(record)

	return res, nil
}

func (s *serviceImpl) UpdateStaffPermissions(ctx context.Context, req dto.StaffPermissionsRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStaffPermissions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.staffTarget(ctx, id); err != nil {
		return err
	}

	principal, _ := permissions.FromContext(ctx)

	record := model.StaffPermission{
		ID:                uuid.NewString(),
		ProfileID:         id,
		CanManageRooms:    req.CanManageRooms,
		CanManageBookings: req.CanManageBookings,
		CanViewReports:    req.CanViewReports,
		CanManageStaff:    req.CanManageStaff,
		Metadata:          gModel.NewMetadata(principal.UserID, s.now()),
	}

	if err = s.staffRepo.Upsert(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to update staff permissions")

		return fmt.Errorf("failed to update staff permissions: %w", err)
	}

	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cachePrincipal, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete principal from cache")
		}
	}()

	return nil
}

// LoadPrincipal resolves the capabilities of userID. Profile and staff rows are cached;
// the capability set is derived on every call.
func (s *serviceImpl) LoadPrincipal(ctx context.Context, userID string) (res permissions.Principal, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LoadPrincipal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var inputs dto.PrincipalInputs

	cacheKey := shared.BuildCacheKey(cachePrincipal, userID)
	if err = s.cache.Get(ctx, cacheKey, &inputs); err != nil {
		inputs, err = s.principalInputs(ctx, userID)
		if err != nil {
			return res, err
		}

		go func() {
			if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, inputs, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save principal to cache")
			}
		}()
	}

	role := inputs.Role
	if !inputs.Found {
		role = constant.RoleGuest
	}

	return permissions.Principal{
		UserID:       userID,
		Role:         role,
		HotelID:      inputs.HotelID,
		Capabilities: permissions.Resolve(role, inputs.Staff),
	}, nil
}

func (s *serviceImpl) principalInputs(ctx context.Context, userID string) (res dto.PrincipalInputs, err error) {
	profile, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, nil
	}

	res.Found = true
	res.Role = profile.Role
	res.HotelID = profile.HotelIDValue()

	if profile.Role != constant.RoleStaff {
		return res, nil
	}

	record, err := s.staffRepo.Get(ctx, shared.FilterByID(userID, model.StaffFieldProfileID, model.StaffTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff permissions")

		return res, fmt.Errorf("failed to get staff permissions: %w", err)
	}

	if record.ID != constant.Empty {
		flags := record.Flags()
		res.Staff = &flags
	}

	return res, nil
}

func (s *serviceImpl) invalidateProfile(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, key := range []string{shared.BuildCacheKey(cacheGetProfile, id), shared.BuildCacheKey(cachePrincipal, id)} {
			if err := s.cache.Delete(c, key); err != nil {
				log.Error().Err(err).Str("cacheKey", key).Msg("failed to delete profile from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProfile)
	}()
}
