package feature

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/feature/model/dto"
	"hotelops/internal/domains/feature/service"
	"hotelops/shared/constant"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Feature
	otel    otel.Otel
}

func New(service service.Feature, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-features", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFeatures)
		routerGroup.Post("/", handler.CreateFeature)
		routerGroup.Patch("/{id}", handler.UpdateFeature)
	})
}

// GetFeatures lists active room features.
// @Summary List room features
// @Description Active features ordered by category and name.
// @Tags RoomFeature
// @Produce json
// @Success 200 {object} response.Data[[]dto.FeatureResponse]
// @Failure 500 {object} response.Error
// @Router /v1/room-features [get]
// @Security BearerAuth
func (handler *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeatures")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room features")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateFeature adds a room feature.
// @Summary Create a room feature
// @Tags RoomFeature
// @Accept json
// @Produce json
// @Param request body dto.CreateFeatureRequest true "Create Feature Request"
// @Success 201 {object} response.Data[dto.FeatureResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-features [post]
// @Security BearerAuth
func (handler *Handler) CreateFeature(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeature")
	defer scope.End()

	req := dto.CreateFeatureRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room feature")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateFeature updates a room feature.
// @Summary Update a room feature
// @Tags RoomFeature
// @Accept json
// @Produce json
// @Param id path string true "Feature ID"
// @Param request body dto.UpdateFeatureRequest true "Update Feature Request"
// @Success 200 {object} response.Message "Room feature updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-features/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFeature")
	defer scope.End()

	req := dto.UpdateFeatureRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room feature")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room feature updated successfully")
}
