package transport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UseInvite(c *gin.Context) {
	user, err := h.userService.UseInvite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type debtRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Currency    string `json:"currency" binding:"required,len=3"`
}

func (h *UserHandler) RecordDebt(c *gin.Context) {
	h.debtOp(c, h.userService.RecordDebt)
}

func (h *UserHandler) SettleDebt(c *gin.Context) {
	h.debtOp(c, h.userService.SettleDebt)
}

func (h *UserHandler) debtOp(c *gin.Context, op func(ctx context.Context, userID string, amount entity.Money) (*entity.User, error)) {
	var req debtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := entity.NewMoney(req.AmountCents, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := op(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
