package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/service"
)

type SplitHandler struct {
	splitService service.SplitPaymentService
}

func NewSplitHandler(splitService service.SplitPaymentService) *SplitHandler {
	return &SplitHandler{splitService: splitService}
}

func (h *SplitHandler) CreateSplit(c *gin.Context) {
	var req service.CreateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	split, err := h.splitService.CreateSplit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, split)
}

type payShareRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *SplitHandler) RecordPayment(c *gin.Context) {
	var req payShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	split, err := h.splitService.RecordPayment(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, split)
}

func (h *SplitHandler) GetSplit(c *gin.Context) {
	split, err := h.splitService.GetSplit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, split)
}
