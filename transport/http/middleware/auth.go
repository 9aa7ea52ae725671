package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/jwt"
	"hotelops/infras/otel"
	"hotelops/permissions"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
	"hotelops/transport/http/response"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Access defines the interface for capability based access control middleware
type Access interface {
	Access(http.Handler) http.Handler
}

// AuthAccess combines all middleware interfaces
type AuthAccess interface {
	Auth
	Access
}

type authAccessImpl struct {
	jwtService  jwt.JWT
	revocations TokenRevocation
	principals  PrincipalLoader
	otel        otel.Otel
	permission  *permissions.PermissionData
	cfg         *config.Config
}

func NewAuthAccessMiddleware(
	jwtService jwt.JWT,
	revocations TokenRevocation,
	principals PrincipalLoader,
	otel otel.Otel,
	permissions *permissions.PermissionData,
	cfg *config.Config,
) AuthAccess {
	return &authAccessImpl{
		jwtService:  jwtService,
		revocations: revocations,
		principals:  principals,
		otel:        otel,
		permission:  permissions,
		cfg:         cfg,
	}
}

func (m *authAccessImpl) endpoint(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	if m.permission == nil {
		return path, permissions.Permission{}
	}

	return path, m.permission.FindPermissions(path, request.Method)
}

// Auth validates the bearer token and loads the caller's principal.
func (m *authAccessImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.endpoint(request)
		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		fail := func(err error) {
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			fail(failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			fail(failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			fail(failure.Unauthorized(message))

			return
		}

		if claims.UserID == "" || claims.TokenID == "" {
			log.Error().Msg("JWT claims: UserID or TokenID is empty")
			fail(failure.Unauthorized("Invalid token claims"))

			return
		}

		revoked, err := m.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			fail(failure.ServiceUnavailable("unable to verify token"))

			return
		}

		if revoked {
			fail(failure.Unauthorized("Token has been revoked"))

			return
		}

		principal, err := m.principals.LoadPrincipal(ctx, claims.UserID)
		if err != nil {
			fail(err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, principal.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, constant.ContextKeyTokenExpiry, claims.ExpiresAt.Time)
		}

		ctx = permissions.WithPrincipal(ctx, principal)

		identify(ctx, principal)

		scope.SetAttributes(map[string]any{
			"user_id":  principal.UserID,
			"role":     principal.Role,
			"hotel_id": principal.HotelID,
		})
		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Access rejects principals whose capabilities satisfy none of the endpoint's requirements.
// Requires prior authentication via Auth middleware
func (m *authAccessImpl) Access(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "access.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.endpoint(request)
		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		principal, ok := permissions.FromContext(ctx)
		if !ok {
			err := failure.Unauthorized("missing principal")
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if !permission.Allowed(principal.Capabilities) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":            principal.Role,
				"required_permissions": permission.Permissions,
				"reason":               "capability_missing",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authAccessImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, failure.ForbiddenError)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
