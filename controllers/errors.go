package controllers

import (
	"errors"
	"net/http"
	"vocab-center/services"

	restful "github.com/emicklei/go-restful/v3"
)

// writeServiceError translates service-layer sentinel errors to HTTP
// responses. Unknown errors (including store failures) are reported as
// internal errors, never masked as success.
func writeServiceError(response *restful.Response, err error) {
	statusCode := http.StatusInternalServerError
	message := "An internal error occurred"

	switch {
	case errors.Is(err, services.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrPermissionDenied):
		statusCode = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrDuplicateUsername), errors.Is(err, services.ErrDuplicateMembership):
		statusCode = http.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrMissingReference):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrInvalidCredentials):
		// Don't reveal which of the two failed
		statusCode = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, services.ErrSessionInvalid):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	}

	_ = response.WriteHeaderAndJson(statusCode, map[string]string{"message": message}, restful.MIME_JSON)
}
