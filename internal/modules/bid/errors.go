package bid

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("bid not found")
	ErrTaskNotFound            = errors.New("task not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrTaskNotOpen             = errors.New("task is not open for bidding")
	ErrDuplicateBid            = errors.New("bid already placed for this task")
	ErrTaskAlreadyAssigned     = errors.New("another bid was already accepted")
	ErrOwnTask                 = errors.New("cannot bid on own task")
)
