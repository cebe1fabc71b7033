package controllers

import (
	"net/http"
	"regexp"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// callerFrom returns the authenticated caller or writes a 401.
func callerFrom(w http.ResponseWriter, r *http.Request) (*domain.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, domain.ErrUnauthenticated.Error())
		return nil, false
	}
	return id, true
}
