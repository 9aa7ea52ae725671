package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelops/infras/jwt"
	"hotelops/internal/domains/auth/model/dto"
	"hotelops/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToModels(t *testing.T) {
	name := "Ada"
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	req := dto.RegisterRequest{Email: "ada@example.com", Password: "secret-password", FullName: &name}

	user, profile := req.ToModels("hashed", now)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "hashed", user.PasswordHash)
	assert.True(t, user.IsActive)
	assert.Equal(t, constant.RoleGuest, profile.Role)
	assert.Nil(t, profile.HotelID)
	assert.Equal(t, &name, profile.FullName)
	assert.Equal(t, now, profile.CreatedAt)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}
