package payment

import "errors"

var (
	ErrValidation     = errors.New("invalid payment data")
	ErrNotFound       = errors.New("payment not found")
	ErrForbidden      = errors.New("access denied")
	ErrAmountMismatch = errors.New("amount does not match the balance due")
	ErrAlreadyPaid    = errors.New("nothing left to pay")
	ErrNotRefundable  = errors.New("payment cannot be refunded")
	ErrRefundTooLarge = errors.New("refund exceeds the amount paid")
)
