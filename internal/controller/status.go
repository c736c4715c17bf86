package controller

import (
	"errors"
	"net/http"

	"github.com/Hazemprogammar/SudanEdu/internal/service"
)

// StatusFromError maps the service layer's stable error kinds to HTTP status
// codes. Anything unrecognized is an infrastructure failure.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrAttemptInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTransfer),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
