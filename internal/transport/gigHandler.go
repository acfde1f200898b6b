package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/service"
)

type GigHandler struct {
	gigService service.GigService
}

func NewGigHandler(gigService service.GigService) *GigHandler {
	return &GigHandler{gigService: gigService}
}

func (h *GigHandler) PostAvailability(c *gin.Context) {
	var req service.PostAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	availability, err := h.gigService.PostAvailability(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, availability)
}

func (h *GigHandler) ListOpenAvailabilities(c *gin.Context) {
	availabilities, err := h.gigService.ListOpenAvailabilities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, availabilities)
}

func (h *GigHandler) ApplyToGig(c *gin.Context) {
	var req service.ApplyToGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.gigService.ApplyToGig(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *GigHandler) AcceptApplication(c *gin.Context) {
	// body is optional; event details default to the availability's date
	var req service.AcceptApplicationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	event, err := h.gigService.AcceptApplication(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *GigHandler) RejectApplication(c *gin.Context) {
	application, err := h.gigService.RejectApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
