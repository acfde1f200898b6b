package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/entity"
)

// respondError translates domain sentinels into HTTP statuses in one place
// so every handler reports failures the same way.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrCurrencyMismatch),
		errors.Is(err, entity.ErrNegativeAmount):
		return http.StatusBadRequest

	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrAttendeeNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrWalletNotFound),
		errors.Is(err, entity.ErrSplitNotFound),
		errors.Is(err, entity.ErrAvailabilityNotFound),
		errors.Is(err, entity.ErrApplicationNotFound),
		errors.Is(err, entity.ErrDistributionNotFound),
		errors.Is(err, entity.ErrNotASplitPayer):
		return http.StatusNotFound

	case errors.Is(err, entity.ErrAlreadyRSVPed),
		errors.Is(err, entity.ErrAvailabilityTaken),
		errors.Is(err, entity.ErrWalletExists),
		errors.Is(err, entity.ErrIllegalTransition),
		errors.Is(err, entity.ErrVenueRequired),
		errors.Is(err, entity.ErrAlreadyCheckedIn),
		errors.Is(err, entity.ErrAlreadyCancelled),
		errors.Is(err, entity.ErrEventFull):
		return http.StatusConflict

	case errors.Is(err, entity.ErrOutstandingDebt),
		errors.Is(err, entity.ErrInvitesExhausted),
		errors.Is(err, entity.ErrInsufficientFunds),
		errors.Is(err, entity.ErrInsufficientLockedFunds),
		errors.Is(err, entity.ErrInsufficientRevenue):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
