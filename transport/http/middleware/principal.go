package middleware

//go:generate go run go.uber.org/mock/mockgen -source=./principal.go -destination=./mocks/principal_mock.go -package=mocks

import (
	"context"

	"hotelops/permissions"
)

// TokenRevocation reports access tokens invalidated by sign-out.
type TokenRevocation interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// PrincipalLoader resolves the profile and capabilities of an authenticated user.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID string) (permissions.Principal, error)
}
