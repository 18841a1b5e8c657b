package payment

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("payment not found")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
