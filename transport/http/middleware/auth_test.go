package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/jwt"
	jwtMocks "hotelops/infras/jwt/mocks"
	otelMocks "hotelops/infras/otel/mocks"
	"hotelops/permissions"
	"hotelops/shared/constant"
	"hotelops/shared/errorlog"
	"hotelops/transport/http/middleware"
	"hotelops/transport/http/middleware/mocks"
	"hotelops/transport/http/response"
)

const (
	testUserID  = "7b5a7f5e-8d1c-4a53-9c4b-3f2f1f0c9a11"
	testHotelID = "1d0f7c34-4c57-4c1e-b2b9-6f8fb0a0e4d2"
	testTokenID = "token-1"
	testAPIKey  = "internal-key"
)

type fixture struct {
	jwt         *jwtMocks.MockJWT
	revocations *mocks.MockTokenRevocation
	principals  *mocks.MockPrincipalLoader
	errors      *errorlog.Log
	router      chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		jwt:         jwtMocks.NewMockJWT(ctrl),
		revocations: mocks.NewMockTokenRevocation(ctrl),
		principals:  mocks.NewMockPrincipalLoader(ctrl),
		errors:      errorlog.New(10),
	}

	cfg := &config.Config{}
	cfg.App.APIKey = testAPIKey

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Method: http.MethodPost, Path: "/v1/auth/login", Skip: true},
			{Method: http.MethodGet, Path: "/v1/rooms", Permissions: []string{permissions.CapabilityHotelAdmin, permissions.CapabilityStaff}},
			{Method: http.MethodGet, Path: "/v1/admin/errors", Permissions: []string{permissions.CapabilitySuperAdmin}},
		},
	}

	otel := otelMocks.NewOtel()
	app := middleware.NewAppMiddleware(otel, cfg, nil, f.errors)
	auth := middleware.NewAuthAccessMiddleware(f.jwt, f.revocations, f.principals, otel, perms, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		principal, _ := permissions.FromContext(r.Context())
		response.WithMessage(w, http.StatusOK, principal.Role)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(v1 chi.Router) {
		v1.Use(app.CaptureErrors, auth.APIKey, auth.Auth, auth.Access)
		v1.Post("/auth/login", ok)
		v1.Get("/rooms", ok)
		v1.Get("/admin/errors", ok)
	})

	f.router = router

	return f
}

func (f *fixture) do(method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func bearer() map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer access-token"}
}

func staffPrincipal() permissions.Principal {
	return permissions.Principal{
		UserID:       testUserID,
		Role:         constant.RoleStaff,
		HotelID:      testHotelID,
		Capabilities: permissions.Resolve(constant.RoleStaff, &permissions.StaffFlags{CanManageBookings: true}),
	}
}

func (f *fixture) expectValidToken() {
	f.jwt.EXPECT().ValidateToken("access-token", jwt.AccessToken).Return(&jwt.Claims{
		UserID:  testUserID,
		Email:   "staff@example.com",
		TokenID: testTokenID,
		Type:    jwt.AccessToken,
	}, nil)
}

func TestAuthAccess(t *testing.T) {
	t.Run("public endpoint skips authentication", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/v1/auth/login", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/rooms", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, 1, f.errors.Len())
		assert.Equal(t, http.StatusUnauthorized, f.errors.Recent(1)[0].Code)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().ValidateToken("access-token", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		rec := f.do(http.MethodGet, "/v1/rooms", bearer())

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token has expired")
	})

	t.Run("revoked token", func(t *testing.T) {
		f := newFixture(t)
		f.expectValidToken()
		f.revocations.EXPECT().IsRevoked(gomock.Any(), testTokenID).Return(true, nil)

		rec := f.do(http.MethodGet, "/v1/rooms", bearer())

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revocation store unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.expectValidToken()
		f.revocations.EXPECT().IsRevoked(gomock.Any(), testTokenID).Return(false, errors.New("redis down"))

		rec := f.do(http.MethodGet, "/v1/rooms", bearer())

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("staff reaches an allowed endpoint", func(t *testing.T) {
		f := newFixture(t)
		f.expectValidToken()
		f.revocations.EXPECT().IsRevoked(gomock.Any(), testTokenID).Return(false, nil)
		f.principals.EXPECT().LoadPrincipal(gomock.Any(), testUserID).Return(staffPrincipal(), nil)

		rec := f.do(http.MethodGet, "/v1/rooms", bearer())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), constant.RoleStaff)
		assert.Zero(t, f.errors.Len())
	})

	t.Run("staff is forbidden from super admin endpoints", func(t *testing.T) {
		f := newFixture(t)
		f.expectValidToken()
		f.revocations.EXPECT().IsRevoked(gomock.Any(), testTokenID).Return(false, nil)
		f.principals.EXPECT().LoadPrincipal(gomock.Any(), testUserID).Return(staffPrincipal(), nil)

		rec := f.do(http.MethodGet, "/v1/admin/errors", bearer())

		assert.Equal(t, http.StatusForbidden, rec.Code)

		require.Equal(t, 1, f.errors.Len())
		entry := f.errors.Recent(1)[0]
		assert.Equal(t, testUserID, entry.UserID)
		assert.Equal(t, testHotelID, entry.HotelID)
		assert.Equal(t, "/v1/admin/errors", entry.Context["path"])
	})

	t.Run("principal lookup failure is returned", func(t *testing.T) {
		f := newFixture(t)
		f.expectValidToken()
		f.revocations.EXPECT().IsRevoked(gomock.Any(), testTokenID).Return(false, nil)
		f.principals.EXPECT().LoadPrincipal(gomock.Any(), testUserID).Return(permissions.Principal{}, errors.New("profile query failed"))

		rec := f.do(http.MethodGet, "/v1/rooms", bearer())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("internal api key bypasses authentication", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/admin/errors", map[string]string{constant.RequestHeaderAPIKey: testAPIKey})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong api key is forbidden", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/v1/rooms", map[string]string{constant.RequestHeaderAPIKey: "nope"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
