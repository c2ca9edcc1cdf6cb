package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/autolot/internal/adapter"
	"github.com/MKhiriev/autolot/internal/app"
	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/service"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/internal/utils"
	"github.com/MKhiriev/autolot/models"
)

// writeError maps a service or store error onto the API's error taxonomy and
// writes the JSON body. Validation failures carry the full field list; the
// csrf_invalid code is what triggers the admin client's refresh-and-retry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var verrs *service.ValidationErrors
	if errors.As(err, &verrs) {
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error:  app.MsgValidationFailed,
			Code:   models.CodeValidation,
			Fields: verrs.Fields,
		}, http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, errBadJSON), errors.Is(err, errBadMultipart), errors.Is(err, errBadID),
		errors.Is(err, service.ErrUnknownField):
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error: err.Error(),
			Code:  models.CodeValidation,
		}, http.StatusBadRequest)

	case errors.Is(err, service.ErrWrongPassword), errors.Is(err, service.ErrUnauthenticated):
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error: app.MsgUnauthorized,
		}, http.StatusUnauthorized)

	case errors.Is(err, service.ErrCSRFInvalid):
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error: app.MsgCSRFInvalid,
			Code:  models.CodeCSRFInvalid,
		}, http.StatusForbidden)

	case errors.Is(err, service.ErrRateLimited):
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error: app.MsgTooManyRequests,
			Code:  models.CodeRateLimited,
		}, http.StatusTooManyRequests)

	case errors.Is(err, store.ErrVehicleNotFound), errors.Is(err, store.ErrLeadNotFound):
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error: app.MsgNotFound,
			Code:  models.CodeNotFound,
		}, http.StatusNotFound)

	case errors.Is(err, adapter.ErrUploadFailed):
		log.Err(err).Msg("image host rejected upload")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error: app.MsgUploadFailed,
			Code:  models.CodeUpload,
		}, http.StatusInternalServerError)

	default:
		log.Err(err).Msg("unexpected error")
		_, _ = utils.WriteJSON(w, models.ErrorResponse{
			Error: app.MsgInternalServerError,
		}, http.StatusInternalServerError)
	}
}
