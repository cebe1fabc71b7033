package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"volunteerhub/internal/domain"
)

const internalErrorMessage = "An error occurred"

// WriteServiceError maps an error returned by a service to its HTTP status and
// error code. 5xx responses are logged.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	var se *domain.StoreError
	switch {
	case errors.As(err, &ve):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, ve.Message)
	case errors.Is(err, domain.ErrUnauthenticated):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotRegistered):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotRegistered, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyCheckedIn):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrDuplicateSubmission):
		WriteJSONError(w, http.StatusTooManyRequests, ErrCodeTooManyRequests, err.Error())
	case errors.As(err, &se):
		logger.ErrorContext(r.Context(), "store failure", "path", r.URL.Path, "method", r.Method, "op", se.Op, "err", err)
		WriteJSONError(w, http.StatusBadGateway, ErrCodeStoreError, se.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, internalErrorMessage)
	}
}
