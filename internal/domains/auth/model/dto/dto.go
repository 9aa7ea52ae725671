package dto

import (
	"time"

	"github.com/google/uuid"

	"hotelops/infras/jwt"
	profileModel "hotelops/internal/domains/profile/model"
	userModel "hotelops/internal/domains/user/model"
	"hotelops/shared/constant"
	gModel "hotelops/shared/model"
)

type RegisterRequest struct {
	Email    string  `json:"email"               validate:"required,email,max=255"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
}

// ToModels builds the credential row and the guest profile of a new account. Both share one id.
func (r *RegisterRequest) ToModels(hashedPassword string, now time.Time) (userModel.User, profileModel.Profile) {
	id := uuid.NewString()
	metadata := gModel.NewMetadata(constant.ContextGuest, now)

	user := userModel.User{
		ID:           id,
		Email:        r.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		Metadata:     metadata,
	}

	profile := profileModel.Profile{
		ID:       id,
		Role:     constant.RoleGuest,
		FullName: r.FullName,
		Metadata: metadata,
	}

	return user, profile
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLoginAt time.Time `db:"last_login_at" json:"last_login_at" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	PasswordHash string `db:"password_hash" json:"-"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// LogoutRequest optionally names the refresh token to revoke alongside the current access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}
