package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hotelops/infras/otel"
	"hotelops/shared/constant"
	"hotelops/shared/errorlog"
	"hotelops/shared/failure"
	"hotelops/transport/http/response"
)

const defaultErrorLimit = 50

type Handler struct {
	errors *errorlog.Log
	otel   otel.Otel
}

func New(errors *errorlog.Log, otel otel.Otel) Handler {
	return Handler{
		errors: errors,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/errors", handler.GetErrors)
		routerGroup.Delete("/errors", handler.ClearErrors)
	})
}

type errorsResponse struct {
	Errors   []errorlog.Entry `json:"errors"`
	Total    int              `json:"total"`
	Capacity int              `json:"capacity"`
}

// GetErrors lists recent application errors, newest first.
// @Summary Recent errors
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {object} response.Data[errorsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/admin/errors [get]
// @Security BearerAuth
func (handler *Handler) GetErrors(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetErrors")
	defer scope.End()

	limit := defaultErrorLimit

	if raw := request.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.WithError(writer, failure.BadRequestFromString("limit must be a positive integer"))

			return
		}

		limit = parsed
	}

	response.WithJSON(writer, http.StatusOK, errorsResponse{
		Errors:   handler.errors.Recent(limit),
		Total:    handler.errors.Len(),
		Capacity: handler.errors.Capacity(),
	})
}

// ClearErrors empties the error log.
// @Summary Clear recent errors
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Router /v1/admin/errors [delete]
// @Security BearerAuth
func (handler *Handler) ClearErrors(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearErrors")
	defer scope.End()

	handler.errors.Clear()

	user, _ := request.Context().Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Error log cleared by user " + user)

	response.WithMessage(writer, http.StatusOK, "error log cleared")
}
