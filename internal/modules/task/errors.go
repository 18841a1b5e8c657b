package task

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("task not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
