package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every business error wraps exactly one of them,
// the HTTP layer maps them to 400, 404 and 409.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Lifecycle errors
var (
	// ErrAlreadyRejected booking request was declined earlier
	ErrAlreadyRejected = fmt.Errorf("%w: already rejected", ErrConflict)

	// ErrAlreadyApproved booking request was approved earlier
	ErrAlreadyApproved = fmt.Errorf("%w: already approved", ErrConflict)

	// ErrExpiredSlot slot has already started or passed
	ErrExpiredSlot = fmt.Errorf("%w: cannot approve expired slot", ErrValidation)

	// ErrBookingClosed booking is completed or canceled
	ErrBookingClosed = fmt.Errorf("%w: booking is closed", ErrConflict)
)

// Kind returns the error kind sentinel wrapped by err or nil
func Kind(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrConflict):
		return ErrConflict
	}
	return nil
}
