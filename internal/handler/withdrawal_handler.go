package handler

import (
	"errors"
	"fmt"
	"net/http"

	"safechain/config"
	"safechain/internal/domain"
	"safechain/internal/middleware"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/pkg/banking"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WithdrawalHandler struct {
	cfg         *config.Config
	withdrawals *repository.WithdrawalRepository
	wallets     *repository.WalletRepository
}

func NewWithdrawalHandler(cfg *config.Config, withdrawals *repository.WithdrawalRepository, wallets *repository.WalletRepository) *WithdrawalHandler {
	return &WithdrawalHandler{cfg: cfg, withdrawals: withdrawals, wallets: wallets}
}

type withdrawalRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod     string          `json:"payment_method" binding:"required"`
	AccountHolderName string          `json:"account_holder_name"`
	BankName          string          `json:"bank_name"`
	AccountNumber     string          `json:"account_number"`
	AccountType       string          `json:"account_type"`
}

// Create files a withdrawal request. The wallet is only debited when an admin
// approves it, but an obviously underfunded request is rejected up front.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req withdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount.LessThan(h.cfg.Platform.MinWithdrawal) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("minimum withdrawal is R%s", h.cfg.Platform.MinWithdrawal.StringFixed(2)),
		})
		return
	}
	if req.PaymentMethod != domain.PaymentMethodBank && req.PaymentMethod != domain.PaymentMethodCash {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_method must be bank or cash"})
		return
	}

	w := &models.Withdrawal{
		UserID:        middleware.GetUserID(c),
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.StatusPending,
	}
	if req.PaymentMethod == domain.PaymentMethodBank {
		if req.AccountHolderName == "" || req.AccountNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bank withdrawals require account holder name and account number"})
			return
		}
		if !banking.IsKnownBank(req.BankName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown bank"})
			return
		}
		w.AccountHolderName = req.AccountHolderName
		w.BankName = banking.BankNames[req.BankName]
		w.AccountNumber = req.AccountNumber
		w.BranchCode = banking.BranchCode(req.BankName)
		w.AccountType = req.AccountType
	}

	wallet, err := h.wallets.GetByUserID(w.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}
	if wallet == nil || wallet.Balance.LessThan(req.Amount) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient wallet balance"})
		return
	}

	if err := h.withdrawals.Create(w); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit withdrawal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"withdrawal": w})
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	list, err := h.withdrawals.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list, "banks": banking.BankNames})
}
