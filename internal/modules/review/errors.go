package review

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotFound        = errors.New("review not found")
	ErrNotBookingParty = errors.New("reviewer is not a booking party")
	ErrBookingNotDone  = errors.New("booking is not completed")
	ErrAlreadyReviewed = errors.New("booking already reviewed by this user")
)
