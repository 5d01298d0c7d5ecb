package handler

import (
	"errors"
	"net/http"

	"github.com/job-portal-api/internal/domain"
)

// httpError maps a domain sentinel error to its HTTP status. Errors that
// carry no sentinel are store or programming failures and surface as a
// generic 500 so internal detail never leaks to the client.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrAlreadyVerified):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotEligible):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrDelivery):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
