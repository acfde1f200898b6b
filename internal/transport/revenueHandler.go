package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/service"
)

type RevenueHandler struct {
	revenueService service.RevenueService
}

func NewRevenueHandler(revenueService service.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

func (h *RevenueHandler) CalculateDistribution(c *gin.Context) {
	var req service.CalculateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dist, err := h.revenueService.CalculateDistribution(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dist)
}

func (h *RevenueHandler) ProcessDistribution(c *gin.Context) {
	dist, err := h.revenueService.ProcessDistribution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

func (h *RevenueHandler) GetDistribution(c *gin.Context) {
	dist, err := h.revenueService.GetDistribution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}
