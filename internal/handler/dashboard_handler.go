package handler

import (
	"net/http"

	"safechain/internal/middleware"
	"safechain/internal/repository"
	"safechain/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler assembles the signed-in overview. Matured investments are
// settled before the balances are read so the user always sees paid-out
// returns.
type DashboardHandler struct {
	users       *repository.UserRepository
	wallets     *repository.WalletRepository
	investments *repository.InvestmentRepository
	deposits    *repository.DepositRepository
	referrals   *repository.ReferralRepository
	invSvc      *service.InvestmentService
}

func NewDashboardHandler(users *repository.UserRepository, wallets *repository.WalletRepository, investments *repository.InvestmentRepository, deposits *repository.DepositRepository, referrals *repository.ReferralRepository, invSvc *service.InvestmentService) *DashboardHandler {
	return &DashboardHandler{
		users:       users,
		wallets:     wallets,
		investments: investments,
		deposits:    deposits,
		referrals:   referrals,
		invSvc:      invSvc,
	}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if _, err := h.invSvc.SettleMatured(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to settle investments"})
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	wallet, err := h.wallets.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}
	active, err := h.investments.ListActiveByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load investments"})
		return
	}
	totalDeposited, err := h.deposits.SumApprovedByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deposits"})
		return
	}
	referralEarnings, err := h.referrals.SumRewardsByReferrer(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":               user,
		"wallet":             wallet,
		"active_investments": active,
		"total_deposited":    totalDeposited,
		"referral_earnings":  referralEarnings,
		"next_level_needs":   user.NextLevelThreshold(),
	})
}
