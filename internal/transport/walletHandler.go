package transport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/internal/service"
)

type WalletHandler struct {
	walletService service.WalletService
}

func NewWalletHandler(walletService service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

type amountRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
	Currency    string `json:"currency" binding:"required,len=3"`
}

func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.walletService.GetWallet(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHandler) Deposit(c *gin.Context) {
	h.mutate(c, h.walletService.Deposit)
}

func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.mutate(c, h.walletService.Withdraw)
}

func (h *WalletHandler) LockFunds(c *gin.Context) {
	h.mutate(c, h.walletService.LockFunds)
}

func (h *WalletHandler) ReleaseFunds(c *gin.Context) {
	h.mutate(c, h.walletService.ReleaseFunds)
}

func (h *WalletHandler) mutate(c *gin.Context, op func(ctx context.Context, userID string, amount entity.Money) (*entity.Wallet, error)) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := entity.NewMoney(req.AmountCents, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	wallet, err := op(c.Request.Context(), c.Param("user_id"), amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}
