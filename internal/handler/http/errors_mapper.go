package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/eagle-pass/internal/app"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/service"
	"github.com/MKhiriev/eagle-pass/internal/store"
	"github.com/MKhiriev/eagle-pass/internal/utils"
	"github.com/MKhiriev/eagle-pass/internal/validators"
	"github.com/MKhiriev/eagle-pass/models"
	"github.com/rs/zerolog"
)

type errorStatus struct {
	err     error
	status  int
	message string
}

// errorStatuses is matched in order; the first errors.Is hit wins. An empty
// message means the error text is safe to show; 5xx entries always carry a
// fixed message.
var errorStatuses = []errorStatus{
	{err: service.ErrUnableToRetrieveEntry, status: http.StatusInternalServerError, message: app.MsgUnableToRetrieveEntry},

	{err: service.ErrNoFieldsToUpdate, status: http.StatusBadRequest, message: app.MsgNoFieldsToUpdate},
	{err: validators.ErrNoFieldsToUpdate, status: http.StatusBadRequest, message: app.MsgNoFieldsToUpdate},
	{err: service.ErrInvalidDataProvided, status: http.StatusBadRequest},
	{err: service.ErrNoCodeReceived, status: http.StatusBadRequest, message: app.MsgNoCodeReceived},
	{err: service.ErrInvalidTwoFactorCode, status: http.StatusBadRequest, message: app.MsgInvalidTwoFactorCode},

	{err: service.ErrTokenIsExpiredOrInvalid, status: http.StatusUnauthorized},
	{err: ErrNoUserInContext, status: http.StatusUnauthorized, message: http.StatusText(http.StatusUnauthorized)},

	{err: service.ErrAccessDenied, status: http.StatusForbidden},
	{err: service.ErrUnauthorizedAccessToDifferentUserData, status: http.StatusForbidden},

	{err: service.ErrTwoFactorNotEnabled, status: http.StatusNotFound, message: app.MsgTwoFactorNotEnabled},
	{err: store.ErrNoUserWasFound, status: http.StatusNotFound, message: app.MsgUserNotFound},
	{err: store.ErrPasswordNotFound, status: http.StatusNotFound, message: app.MsgPasswordNotFound},

	{err: store.ErrUserAlreadyExists, status: http.StatusConflict, message: app.MsgUserAlreadyExists},
	{err: store.ErrPasswordAlreadyExists, status: http.StatusConflict, message: app.MsgPasswordAlreadyExists},

	{err: service.ErrOAuthFailed, status: http.StatusBadGateway, message: app.MsgOAuthFailed},
	{err: service.ErrStorageUnavailable, status: http.StatusServiceUnavailable, message: http.StatusText(http.StatusServiceUnavailable)},
}

func lookupError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			if e.message == "" {
				return e.status, err.Error()
			}
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func statusFromError(err error) int {
	status, _ := lookupError(err)
	return status
}

// writeError logs err with the request logger and answers with the mapped
// status and a {"message": ...} body.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status, message := lookupError(err)

	level := zerolog.WarnLevel
	if status >= http.StatusInternalServerError {
		level = zerolog.ErrorLevel
	}
	logger.FromRequest(r).WithLevel(level).Err(err).Int("status", status).Msg(msg)

	writeMessage(w, message, status)
}

func writeMessage(w http.ResponseWriter, message string, status int) {
	utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
}
