package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")
	ErrNotAvailable      = errors.New("not available")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyReviewed   = errors.New("already reviewed")
	ErrNotEligible       = errors.New("not eligible for review")
	ErrNotEditable       = errors.New("booking is not editable in its current status")
)
