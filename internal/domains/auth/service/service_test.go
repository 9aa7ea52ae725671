package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	golangJWT "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/jwt"
	jwtMocks "hotelops/infras/jwt/mocks"
	"hotelops/infras/otel/mocks"
	"hotelops/internal/domains/auth/model/dto"
	"hotelops/internal/domains/auth/service"
	notificationMocks "hotelops/internal/domains/notification/mocks"
	notificationModel "hotelops/internal/domains/notification/model"
	profileMocks "hotelops/internal/domains/profile/mocks"
	profileModel "hotelops/internal/domains/profile/model"
	userMocks "hotelops/internal/domains/user/mocks"
	userModel "hotelops/internal/domains/user/model"
	"hotelops/shared/cache"
	cacheMocks "hotelops/shared/cache/mocks"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
)

// bcrypt hash of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	userRepo    *userMocks.MockUser
	profileRepo *profileMocks.MockProfile
	cache       *cacheMocks.MockRedisCache
	jwt         *jwtMocks.MockJWT
	dispatcher  *notificationMocks.MockDispatcher
	svc         service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Auth.PasswordResetTTLMin = 30
	cfg.Auth.PasswordResetURL = "https://hotel.example/reset"

	f := fixture{
		userRepo:    userMocks.NewMockUser(ctrl),
		profileRepo: profileMocks.NewMockProfile(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		jwt:         jwtMocks.NewMockJWT(ctrl),
		dispatcher:  notificationMocks.NewMockDispatcher(ctrl),
	}

	f.svc = service.New(f.userRepo, f.profileRepo, cfg, f.cache, mocks.NewOtel(), f.jwt, f.dispatcher)

	return f
}

func activeUser() userModel.User {
	return userModel.User{
		ID:           "user-id-123",
		Email:        "test@example.com",
		PasswordHash: passwordHash,
		IsActive:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "creates user and guest profile",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User, profile profileModel.Profile) error {
						assert.Equal(t, user.ID, profile.ID)
						assert.Equal(t, constant.RoleGuest, profile.Role)
						assert.Nil(t, profile.HotelID)
						assert.NotEqual(t, "secret-password1", user.PasswordHash)
						assert.True(t, user.IsActive)

						return nil
					})
			},
		},
		{
			name: "email already registered",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "repository failure",
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			name := "Test User"
			err := f.svc.Register(context.Background(), dto.RegisterRequest{
				Email:    "test@example.com",
				Password: "secret-password1",
				FullName: &name,
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAuthService_RegisterRejectsWeakPassword(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "onlyletters",
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestAuthService_Login(t *testing.T) {
	tokenPair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful login uses profile role",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.profileRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(profileModel.Profile{ID: "user-id-123", Role: constant.RoleStaff}, nil)
				f.jwt.EXPECT().GenerateTokenPair("user-id-123", "test@example.com", constant.RoleStaff).Return(tokenPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "missing profile logs in as guest",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.profileRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{}, nil)
				f.jwt.EXPECT().GenerateTokenPair("user-id-123", "test@example.com", constant.RoleGuest).Return(tokenPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.profileRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{ID: "user-id-123", Role: constant.RoleGuest}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				user := activeUser()
				user.IsActive = false

				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.profileRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{}, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("token generation failed"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", result.AccessToken)
			assert.Equal(t, "refresh-token", result.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	claims := &jwt.Claims{
		UserID:  "user-id-123",
		Email:   "test@example.com",
		TokenID: "refresh-id",
		Type:    jwt.RefreshToken,
		RegisteredClaims: golangJWT.RegisteredClaims{
			ExpiresAt: golangJWT.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenPair := &jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful token refresh claims the old token first",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				gomock.InOrder(
					f.cache.EXPECT().
						SaveNX(gomock.Any(), "auth:revoked:refresh-id", "1", gomock.Any()).
						DoAndReturn(func(_ context.Context, _ string, _ any, seconds int) (bool, error) {
							assert.InDelta(t, 3600, seconds, 5)

							return true, nil
						}),
					f.jwt.EXPECT().GenerateTokenPair("user-id-123", "test@example.com", constant.RoleHotelAdmin).Return(tokenPair, nil),
				)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.profileRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{ID: "user-id-123", Role: constant.RoleHotelAdmin}, nil)
			},
		},
		{
			name: "invalid refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "token already exchanged",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().SaveNX(gomock.Any(), "auth:revoked:refresh-id", "1", gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "token store down issues nothing",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().SaveNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantCode: http.StatusServiceUnavailable,
		},
		{
			name: "deactivated user",
			setupMock: func(f fixture) {
				user := activeUser()
				user.IsActive = false

				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().SaveNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "new-access-token", result.AccessToken)
		})
	}
}

func TestAuthService_RefreshTokenSingleUse(t *testing.T) {
	f := newFixture(t)
	claims := &jwt.Claims{
		UserID:  "user-id-123",
		Email:   "test@example.com",
		TokenID: "refresh-id",
		Type:    jwt.RefreshToken,
		RegisteredClaims: golangJWT.RegisteredClaims{
			ExpiresAt: golangJWT.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	var mu sync.Mutex

	claimed := map[string]bool{}

	f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil).Times(2)
	f.cache.EXPECT().SaveNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, _ any, _ int) (bool, error) {
			mu.Lock()
			defer mu.Unlock()

			if claimed[key] {
				return false, nil
			}

			claimed[key] = true

			return true, nil
		}).
		Times(2)
	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil).Times(1)
	f.profileRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{ID: "user-id-123", Role: constant.RoleGuest}, nil).Times(1)
	f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.TokenPair{AccessToken: "a"}, nil).Times(1)

	errs := make([]error, 2)

	var wg sync.WaitGroup

	for i := range errs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errs[i] = f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
		}()
	}

	wg.Wait()

	succeeded := 0

	for _, err := range errs {
		if err == nil {
			succeeded++

			continue
		}

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	}

	assert.Equal(t, 1, succeeded)
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the current access token until it expires", func(t *testing.T) {
		f := newFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyTokenID, "access-id")
		ctx = context.WithValue(ctx, constant.ContextKeyTokenExpiry, time.Now().Add(time.Hour))

		f.cache.EXPECT().
			Save(gomock.Any(), "auth:revoked:access-id", "1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ any, seconds int) error {
				assert.InDelta(t, 3600, seconds, 5)

				return nil
			})

		require.NoError(t, f.svc.Logout(ctx, dto.LogoutRequest{}))
	})

	t.Run("missing token id", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background(), dto.LogoutRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_IsRevoked(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Exists(gomock.Any(), "auth:revoked:token").Return(true, nil)

	revoked, err := f.svc.IsRevoked(context.Background(), "token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful password change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Contains(t, fields, "password_hash")
						assert.Equal(t, "user-id-123", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
			},
			wantErr: true,
		},
		{
			name: "update password error",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
				f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")
			err := f.svc.ChangePassword(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("stores a token and dispatches the reset notification", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeUser(), nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), "user-id-123", 30*60).Return(nil)
		f.dispatcher.EXPECT().
			Dispatch(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, n notificationModel.Notification) {
				assert.Equal(t, notificationModel.TypePasswordReset, n.Type)
				assert.Equal(t, "test@example.com", n.Recipient)
				assert.Contains(t, n.Variables[notificationModel.VarResetURL], "https://hotel.example/reset?token=")
				assert.Equal(t, "30", n.Variables[notificationModel.VarExpiresInMinutes])
			})

		require.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "test@example.com"}))
	})

	t.Run("unknown email is not revealed", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		require.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "nobody@example.com"}))
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("valid token is consumed atomically and sets the password", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			GetDel(gomock.Any(), "auth:reset:token", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*string)) = "user-id-123"

				return nil
			})
		f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: "token", NewPassword: "newpassword123"}))
	})

	t.Run("second use of the same token fails", func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.cache.EXPECT().
				GetDel(gomock.Any(), "auth:reset:token", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, value any) error {
					*(value.(*string)) = "user-id-123"

					return nil
				}),
			f.cache.EXPECT().GetDel(gomock.Any(), "auth:reset:token", gomock.Any()).Return(fmt.Errorf("wrapped: %w", cache.Nil)),
		)
		f.userRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		req := dto.ResetPasswordRequest{Token: "token", NewPassword: "newpassword123"}
		require.NoError(t, f.svc.ResetPassword(context.Background(), req))

		err := f.svc.ResetPassword(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().GetDel(gomock.Any(), "auth:reset:token", gomock.Any()).Return(cache.Nil)

		err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: "token", NewPassword: "newpassword123"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("token store down", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().GetDel(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: "token", NewPassword: "newpassword123"})
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	})

	t.Run("weak password keeps the token", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: "token", NewPassword: "password"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
