package domain

import "errors"

var (
	// ErrInvalidTimeSlot is returned for unknown slot values
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrInvalidUserStatus is returned for unknown profile statuses
	ErrInvalidUserStatus = errors.New("invalid user status")
)
