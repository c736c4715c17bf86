package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Stable error kinds that callers can test with errors.Is. Controllers
// translate them to HTTP statuses; anything not wrapping one of these is an
// infrastructure failure.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrForbidden           = errors.New("forbidden")
	ErrAlreadyCompleted    = errors.New("exam attempt already completed")
	ErrAttemptInProgress   = errors.New("an attempt for this exam is already in progress")
	ErrInvalidAmount       = errors.New("amount must be a positive number of points")
	ErrInvalidTransfer     = errors.New("points cannot be transferred to the same user")
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrInvalidRole         = errors.New("invalid role")
)

// notFoundOr converts gorm's record-not-found into the stable NotFound kind
// and wraps everything else as a load failure.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
