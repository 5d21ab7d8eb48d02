package order

import "errors"

var (
	ErrValidation        = errors.New("invalid order data")
	ErrNotFound          = errors.New("order not found")
	ErrForbidden         = errors.New("access denied")
	ErrItemUnavailable   = errors.New("menu item is unavailable")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrAlreadyReviewed   = errors.New("order already has a review")
	ErrNotEligible       = errors.New("order is not eligible for review")
)
