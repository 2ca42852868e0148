package models

import "errors"

// Domain error taxonomy. Controllers map these to HTTP statuses with
// errors.Is; services wrap them with fmt.Errorf("%w: ...") for context.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrDuplicateLineItem = errors.New("service already added to booking")
	ErrEmptyBooking      = errors.New("booking has no line items")
	ErrAlreadyConfirmed  = errors.New("booking already confirmed")
	ErrInvalidTransition = errors.New("invalid queue status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPermissionDenied  = errors.New("permission denied")
)
