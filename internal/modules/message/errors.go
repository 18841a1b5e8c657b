package message

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("message not found")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingParty  = errors.New("user is not a party to this booking")
)
