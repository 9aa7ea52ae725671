package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/jwt"
	"hotelops/infras/otel"
	"hotelops/internal/domains/auth/model/dto"
	notificationModel "hotelops/internal/domains/notification/model"
	notificationService "hotelops/internal/domains/notification/service"
	profileModel "hotelops/internal/domains/profile/model"
	profileRepo "hotelops/internal/domains/profile/repository"
	userModel "hotelops/internal/domains/user/model"
	userRepo "hotelops/internal/domains/user/repository"
	"hotelops/shared"
	"hotelops/shared/cache"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/failure"
	"hotelops/shared/password"
	"hotelops/shared/timezone"
)

const (
	cacheRevokedToken = "auth:revoked"
	cachePasswordKey  = "auth:reset"

	revokedMarker = "1"
)

var errInvalidCredentials = failure.Unauthorized("invalid email or password")

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

type serviceImpl struct {
	userRepo    userRepo.User
	profileRepo profileRepo.Profile
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	jwtService  jwt.JWT
	dispatcher  notificationService.Dispatcher
	now         func() time.Time
}

func New(
	userRepo userRepo.User,
	profileRepo profileRepo.Profile,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	jwt jwt.JWT,
	dispatcher notificationService.Dispatcher,
) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		jwtService:  jwt,
		dispatcher:  dispatcher,
		now:         timezone.Now,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = password.CheckStrength(req.Password); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, profile := req.ToModels(hashedPassword, s.now())

	if err = s.userRepo.Register(ctx, user, profile); err != nil {
		if fail := failure.FromPostgres(err, "email already registered"); fail != nil {
			return fail
		}

		log.Error().Err(err).Msg("failed to register user")

		return fmt.Errorf("failed to register user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, errInvalidCredentials
	}

	if err = password.Verify(req.Password, user.PasswordHash); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	if !user.IsActive {
		return res, failure.Forbidden("user account is deactivated") // nolint:wrapcheck
	}

	role, err := s.role(ctx, user.ID)
	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLoginAt: s.now()}
	updatedFields := shared.TransformFields(lastLogin, user.ID)

	if password.NeedsRehash(user.PasswordHash) {
		if rehashed, hashErr := password.Hash(req.Password); hashErr == nil {
			updatedFields[userModel.FieldPasswordHash] = rehashed
		}
	}

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// role reads the profile role, treating a missing profile as guest.
func (s *serviceImpl) role(ctx context.Context, userID string) (string, error) {
	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(userID, profileModel.FieldID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return "", fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return constant.RoleGuest, nil
	}

	return profile.Role, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	if err = s.claim(ctx, claims.TokenID, claims.Remaining(s.now())); err != nil {
		return res, err
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.IsActive {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	role, err := s.role(ctx, user.ID)
	if err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// Logout revokes the access token of the current request and, when given, the refresh token.
func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	expiry, _ := ctx.Value(constant.ContextKeyTokenExpiry).(time.Time)

	if tokenID == constant.Empty {
		return failure.Unauthorized("missing access token") // nolint:wrapcheck
	}

	if err = s.revoke(ctx, tokenID, expiry.Sub(s.now())); err != nil {
		return err
	}

	if req.RefreshToken == constant.Empty {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring invalid refresh token on logout")

		return nil
	}

	return s.revoke(ctx, claims.TokenID, claims.Remaining(s.now()))
}

func (s *serviceImpl) revoke(ctx context.Context, tokenID string, remaining time.Duration) error {
	seconds := int(remaining.Seconds())
	if seconds <= 0 {
		return nil
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID), revokedMarker, seconds); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return failure.ServiceUnavailable("token store unavailable") // nolint:wrapcheck
	}

	return nil
}

// claim deny-lists a refresh token in one atomic step, so it can be exchanged at most once.
func (s *serviceImpl) claim(ctx context.Context, tokenID string, remaining time.Duration) error {
	seconds := int(math.Ceil(remaining.Seconds()))
	if seconds <= 0 {
		return failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	claimed, err := s.cache.SaveNX(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID), revokedMarker, seconds)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim refresh token")

		return failure.ServiceUnavailable("token store unavailable") // nolint:wrapcheck
	}

	if !claimed {
		return failure.Unauthorized("refresh token has been revoked") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.cache.Exists(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check revoked token")

		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return revoked, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if err = password.Verify(req.CurrentPassword, user.PasswordHash); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	return s.setPassword(ctx, userID, req.NewPassword, userID)
}

func (s *serviceImpl) setPassword(ctx context.Context, userID, newPassword, modifiedBy string) error {
	if err := password.CheckStrength(newPassword); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(newPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{PasswordHash: hashedPassword}, modifiedBy)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ForgotPassword issues a single use reset token. It reports success whether or not the email is known.
func (s *serviceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForgotPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.IsActive {
		log.Info().Str("email", req.Email).Msg("password reset requested for unknown or inactive account")

		return nil
	}

	token := uuid.NewString()
	ttlMinutes := s.cfg.Auth.PasswordResetTTLMin

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cachePasswordKey, token), user.ID, ttlMinutes*constant.MinutesToSeconds); err != nil {
		log.Error().Err(err).Msg("failed to store password reset token")

		return fmt.Errorf("failed to store password reset token: %w", err)
	}

	s.dispatcher.Dispatch(ctx, notificationModel.Notification{
		Type:      notificationModel.TypePasswordReset,
		Recipient: user.Email,
		Variables: map[string]string{
			notificationModel.VarResetURL:         s.resetURL(token),
			notificationModel.VarExpiresInMinutes: strconv.Itoa(ttlMinutes),
		},
	})

	return nil
}

func (s *serviceImpl) resetURL(token string) string {
	base := s.cfg.Auth.PasswordResetURL

	parsed, err := url.Parse(base)
	if err != nil || base == constant.Empty {
		return token
	}

	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func (s *serviceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = password.CheckStrength(req.NewPassword); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	var userID string
	if err = s.cache.GetDel(ctx, shared.BuildCacheKey(cachePasswordKey, req.Token), &userID); err != nil {
		if errors.Is(err, cache.Nil) {
			return failure.BadRequestFromString("reset token is invalid or has expired") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to read password reset token")

		return failure.ServiceUnavailable("token store unavailable") // nolint:wrapcheck
	}

	return s.setPassword(ctx, userID, req.NewPassword, userID)
}
