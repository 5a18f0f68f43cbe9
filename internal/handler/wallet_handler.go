package handler

import (
	"net/http"
	"strconv"

	"safechain/internal/middleware"
	"safechain/internal/repository"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	wallets *repository.WalletRepository
}

func NewWalletHandler(wallets *repository.WalletRepository) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

func (h *WalletHandler) Get(c *gin.Context) {
	wallet, err := h.wallets.GetOrCreate(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

// Transactions returns the wallet ledger, newest first. Signed amounts:
// positive rows are credits, negative are debits.
func (h *WalletHandler) Transactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	txs, err := h.wallets.ListTransactions(middleware.GetUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
