package transport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/internal/service"
)

type AttendanceHandler struct {
	attendance service.AttendanceService
	noShow     service.NoShowService
}

func NewAttendanceHandler(attendance service.AttendanceService, noShow service.NoShowService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, noShow: noShow}
}

type attendeeRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *AttendanceHandler) RSVP(c *gin.Context) {
	h.mutate(c, http.StatusCreated, h.attendance.RSVP)
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	h.mutate(c, http.StatusOK, h.attendance.CheckIn)
}

func (h *AttendanceHandler) CancelRSVP(c *gin.Context) {
	h.mutate(c, http.StatusOK, h.attendance.CancelRSVP)
}

func (h *AttendanceHandler) ConfirmRSVP(c *gin.Context) {
	h.mutate(c, http.StatusOK, h.attendance.ConfirmRSVP)
}

func (h *AttendanceHandler) ExcuseAttendee(c *gin.Context) {
	h.mutate(c, http.StatusOK, h.attendance.ExcuseAttendee)
}

func (h *AttendanceHandler) mutate(c *gin.Context, okStatus int, op func(ctx context.Context, eventID, userID string) (*entity.EventAttendee, error)) {
	var req attendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attendee, err := op(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(okStatus, attendee)
}

func (h *AttendanceHandler) ListAttendees(c *gin.Context) {
	attendees, err := h.attendance.ListAttendees(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendees)
}

// RunNoShowSweep triggers the penalty batch for one completed event. The
// worker runs the same sweep on a schedule; this endpoint exists for
// operators.
func (h *AttendanceHandler) RunNoShowSweep(c *gin.Context) {
	report, err := h.noShow.ProcessEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
