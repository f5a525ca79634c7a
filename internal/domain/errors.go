package domain

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPurchaseNotFound    = errors.New("purchase not found")
	ErrNoTicketsSelected   = errors.New("select at least one ticket")
	ErrReservationExpired  = errors.New("reservation expired")
	ErrAlreadySubmitting   = errors.New("confirmation already in progress")
	ErrBuyerInvalid        = errors.New("buyer name or email too short")
	ErrInvalidPage         = errors.New("page number must be at least 1")
	ErrNotReady            = errors.New("reservation not loaded")
)
