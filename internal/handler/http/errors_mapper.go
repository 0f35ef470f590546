package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/airguard-admin/internal/app"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/internal/utils"
)

// errorResponse is the status and message the console expects for an error.
type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first match wins.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{utils.ErrEmptyBody, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrNoRecipients, errorResponse{http.StatusBadRequest, app.MsgNoRecipients}},
	{service.ErrWrongCredentials, errorResponse{http.StatusUnauthorized, app.MsgInvalidCredentials}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrAccountBlocked, errorResponse{http.StatusForbidden, app.MsgAccountBlocked}},
	{service.ErrUserNotFound, errorResponse{http.StatusNotFound, app.MsgUserNotFound}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusNotFound, app.MsgUserNotFound}},
	{service.ErrUserAlreadyExists, errorResponse{http.StatusConflict, app.MsgUserAlreadyExists}},
	{store.ErrAccountIDAlreadyExists, errorResponse{http.StatusConflict, app.MsgUserAlreadyExists}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

// writeError logs err and answers with the mapped status and message.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Warn().Err(err).Int("status", resp.status).Msg(msg)
	}

	utils.WriteMessage(w, resp.message, resp.status)
}
