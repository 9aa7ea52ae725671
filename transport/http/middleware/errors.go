package middleware

import (
	"context"
	"net/http"

	"hotelops/permissions"
	"hotelops/shared/errorlog"
)

type recorderKey struct{}

// errorRecorder feeds every error written through response.WithError into the error log.
type errorRecorder struct {
	http.ResponseWriter
	log       *errorlog.Log
	request   *http.Request
	principal permissions.Principal
}

func (e *errorRecorder) RecordError(err error, code int) {
	e.log.Record(errorlog.Entry{
		Message: err.Error(),
		Code:    code,
		UserID:  e.principal.UserID,
		HotelID: e.principal.HotelID,
		Context: map[string]any{
			"method":     e.request.Method,
			"path":       e.request.URL.Path,
			"request_id": requestID(e.request),
		},
	})
}

// CaptureErrors must sit inside any middleware that wraps the response writer,
// otherwise handlers never see the recorder.
func (a *appMiddleware) CaptureErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &errorRecorder{ResponseWriter: w, log: a.errorLog, request: r}

		ctx := context.WithValue(r.Context(), recorderKey{}, recorder)

		next.ServeHTTP(recorder, r.WithContext(ctx))
	})
}

// identify attaches the authenticated caller to errors recorded for this request.
func identify(ctx context.Context, principal permissions.Principal) {
	if recorder, ok := ctx.Value(recorderKey{}).(*errorRecorder); ok {
		recorder.principal = principal
	}
}
