package entity

import "errors"

var (
	// Not found
	ErrEventNotFound        = errors.New("event not found")
	ErrAttendeeNotFound     = errors.New("attendee not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrSplitNotFound        = errors.New("split payment not found")
	ErrAvailabilityNotFound = errors.New("venue availability not found")
	ErrApplicationNotFound  = errors.New("gig application not found")
	ErrDistributionNotFound = errors.New("revenue distribution not found")

	// Validation
	ErrValidation    = errors.New("validation error")
	ErrInvalidAmount = errors.New("invalid amount")

	// Conflicts
	ErrAlreadyRSVPed      = errors.New("user already has an RSVP for this event")
	ErrAvailabilityTaken  = errors.New("venue already has an availability for this date")
	ErrWalletExists       = errors.New("wallet already exists for this user")
	ErrIllegalTransition  = errors.New("illegal state transition")
	ErrVenueRequired      = errors.New("event has no venue assigned")
	ErrAlreadyCheckedIn   = errors.New("attendee already checked in")
	ErrAlreadyCancelled   = errors.New("RSVP already cancelled")
	ErrNotASplitPayer     = errors.New("user is not a payer of this split payment")

	// Policy gates
	ErrOutstandingDebt   = errors.New("user has outstanding debt, must clear before RSVP")
	ErrInvitesExhausted  = errors.New("no invite credits remaining")
	ErrEventFull         = errors.New("event is at maximum capacity")

	// Money movement
	ErrCurrencyMismatch        = errors.New("currency mismatch")
	ErrNegativeAmount          = errors.New("operation would produce a negative amount")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInsufficientLockedFunds = errors.New("insufficient locked funds")
	ErrInsufficientRevenue     = errors.New("insufficient revenue to cover fixed costs")
)
