package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotelops/infras/otel"
	"hotelops/internal/domains/analytics/model/dto"
	"hotelops/internal/domains/analytics/service"
	"hotelops/shared/constant"
	"hotelops/shared/validator"
	"hotelops/transport/http/response"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
	})
}

// GetSummary reports booking and occupancy figures for a hotel.
// @Summary Hotel analytics summary
// @Description Figures cover the period ending today. Cancelled and no-show bookings are excluded from revenue.
// @Tags Analytics
// @Produce json
// @Param hotel_id query string false "Hotel, required for super admin"
// @Param period query string false "7d, 30d, 90d or 1y" default(30d)
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/analytics/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	query := request.URL.Query()

	req := dto.SummaryRequest{
		HotelID: query.Get("hotel_id"),
		Period:  query.Get("period"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate summary query")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Summary(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build analytics summary")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
