package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these to classify a failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrForbidden         = errors.New("forbidden")

	// ErrSlotLocked is returned by a slot locker when another writer holds the slot.
	ErrSlotLocked = errors.New("slot locked")
)

// Error is a classified failure with a message meant for the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func CapacityExceeded(seats, guests int) error {
	return &Error{
		Kind:    ErrCapacityExceeded,
		Message: fmt.Sprintf("Table only has %d seats, but %d were requested.", seats, guests),
	}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func InvalidTransition(message string) error {
	return &Error{Kind: ErrInvalidTransition, Message: message}
}

func AuthFailed(message string) error {
	return &Error{Kind: ErrAuthFailed, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Messages shared between the service layer and the store.
const (
	MsgTableNotFound       = "Table not found"
	MsgReservationNotFound = "Reservation not found"
	MsgSlotTaken           = "Table is already reserved for the requested time."
	MsgTakeawayNotFound    = "Takeaway not found"
	MsgCategoryNotFound    = "Category not found"
	MsgMenuItemNotFound    = "Menu item not found"
	MsgUserNotFound        = "User not found"
)
