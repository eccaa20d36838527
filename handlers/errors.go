package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gymAPI/services"
)

var statusGroups = []struct {
	code int
	errs []error
}{
	{http.StatusUnauthorized, services.UnauthenticatedErrors},
	{http.StatusForbidden, services.ForbiddenErrors},
	{http.StatusNotFound, services.NotFoundErrors},
	{http.StatusConflict, services.ConflictErrors},
	{http.StatusBadRequest, services.BadRequestErrors},
}

// statusFor maps a service error to an HTTP status. Unknown errors are
// internal.
func statusFor(err error) int {
	for _, g := range statusGroups {
		for _, target := range g.errs {
			if errors.Is(err, target) {
				return g.code
			}
		}
	}
	return http.StatusInternalServerError
}

// respondWithServiceError writes a domain error verbatim and hides
// infrastructure errors behind fallback.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error(fallback, zap.Error(err))
		respondWithError(w, code, fallback)
		return
	}
	respondWithError(w, code, domainMessage(err))
}

// domainMessage returns the text of the sentinel inside err.
func domainMessage(err error) string {
	for _, g := range statusGroups {
		for _, target := range g.errs {
			if errors.Is(err, target) {
				return target.Error()
			}
		}
	}
	return err.Error()
}
