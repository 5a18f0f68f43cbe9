package handler

import (
	"net/http"
	"time"

	"safechain/internal/repository"
	"safechain/pkg/banking"

	"github.com/gin-gonic/gin"
)

// HomeHandler serves the public landing data: platform stats, the deposit
// account details and the referral leaderboard.
type HomeHandler struct {
	users       *repository.UserRepository
	investments *repository.InvestmentRepository
	referrals   *repository.ReferralRepository
}

func NewHomeHandler(users *repository.UserRepository, investments *repository.InvestmentRepository, referrals *repository.ReferralRepository) *HomeHandler {
	return &HomeHandler{users: users, investments: investments, referrals: referrals}
}

func (h *HomeHandler) Home(c *gin.Context) {
	userCount, err := h.users.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	totalPaid, err := h.investments.SumCompletedReturns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	top, err := h.referrals.TopReferrers(5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_users":        userCount,
			"total_returns_paid": totalPaid,
		},
		"top_referrers": top,
		"banking_info":  banking.Company,
		"server_time":   time.Now().UTC(),
	})
}

// BankingInfo returns the company account deposits must be paid into.
func (h *HomeHandler) BankingInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"account":      banking.Company,
		"branch_codes": banking.BranchCodes,
	})
}

// Health is the load balancer probe.
func (h *HomeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}
