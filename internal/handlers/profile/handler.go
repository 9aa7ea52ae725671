package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/profile/model/dto"
	"hotelops/internal/domains/profile/service"
	"hotelops/shared/constant"
	gDto "hotelops/shared/dto"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Profile
	otel    otel.Otel
}

func New(service service.Profile, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/profiles", func(routerGroup chi.Router) {
		routerGroup.Get("/me", handler.Me)
		routerGroup.Get("/", handler.GetProfiles)
		routerGroup.Get("/{id}", handler.GetProfileByID)
		routerGroup.Patch("/{id}/role", handler.UpdateRole)
		routerGroup.Patch("/{id}/hotel", handler.AssignHotel)
		routerGroup.Get("/{id}/staff-permissions", handler.GetStaffPermissions)
		routerGroup.Put("/{id}/staff-permissions", handler.UpdateStaffPermissions)
	})
}

// Me returns the caller's profile.
// @Summary Get own profile
// @Description Profile of the authenticated user with its resolved capabilities.
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Data[dto.MeResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	res, err := handler.service.Me(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetProfiles lists profiles.
// @Summary List profiles
// @Description Super admins see every profile; hotel admins see their hotel.
// @Tags Profile
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Success 200 {object} response.Data[dto.GetProfilesResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles [get]
// @Security BearerAuth
func (handler *Handler) GetProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfiles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(constant.RequestParamHotelID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profiles")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetProfileByID returns one profile.
// @Summary Get a profile by ID
// @Tags Profile
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Data[dto.ProfileResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfileByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateRole changes the role of a profile.
// @Summary Update profile role
// @Description Super admin only. Promoting to staff creates an empty staff permission record.
// @Tags Profile
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body dto.UpdateRoleRequest true "Role"
// @Success 200 {object} response.Message "Role updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/{id}/role [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRole")
	defer scope.End()

	req := dto.UpdateRoleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.UpdateRole(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update role")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Role of profile " + id + " set to " + req.Role)

	response.WithMessage(w, http.StatusOK, "Role updated successfully")
}

// AssignHotel attaches a profile to a hotel.
// @Summary Assign profile to hotel
// @Tags Profile
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body dto.AssignHotelRequest true "Hotel"
// @Success 200 {object} response.Message "Hotel assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/{id}/hotel [patch]
// @Security BearerAuth
func (handler *Handler) AssignHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignHotel")
	defer scope.End()

	req := dto.AssignHotelRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AssignHotel(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign hotel")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Hotel assigned successfully")
}

// GetStaffPermissions returns the flags of a staff profile.
// @Summary Get staff permissions
// @Tags Profile
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} response.Data[dto.StaffPermissionsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/{id}/staff-permissions [get]
// @Security BearerAuth
func (handler *Handler) GetStaffPermissions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaffPermissions")
	defer scope.End()

	res, err := handler.service.GetStaffPermissions(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff permissions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStaffPermissions replaces the flags of a staff profile.
// @Summary Update staff permissions
// @Tags Profile
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body dto.StaffPermissionsRequest true "Permissions"
// @Success 200 {object} response.Message "Staff permissions updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/{id}/staff-permissions [put]
// @Security BearerAuth
func (handler *Handler) UpdateStaffPermissions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStaffPermissions")
	defer scope.End()

	req := dto.StaffPermissionsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.UpdateStaffPermissions(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update staff permissions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Staff permissions of profile " + id + " updated")

	response.WithMessage(w, http.StatusOK, "Staff permissions updated successfully")
}
