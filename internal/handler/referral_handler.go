package handler

import (
	"fmt"
	"net/http"

	"safechain/internal/middleware"
	"safechain/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	users     *repository.UserRepository
	referrals *repository.ReferralRepository
	baseURL   string
}

func NewReferralHandler(users *repository.UserRepository, referrals *repository.ReferralRepository, baseURL string) *ReferralHandler {
	return &ReferralHandler{users: users, referrals: referrals, baseURL: baseURL}
}

// Overview returns the user's referral link, invitees and earnings. The
// referral code is the username, so the link survives account changes.
func (h *ReferralHandler) Overview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	invitees, err := h.referrals.ListByInviter(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	total, err := h.referrals.CountByInviter(userID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	active, err := h.referrals.ActiveCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load referrals"})
		return
	}
	earnings, err := h.referrals.SumRewardsByReferrer(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rewards"})
		return
	}
	rewards, err := h.referrals.ListRewardsByReferrer(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referral_link":    fmt.Sprintf("%s/register?ref=%s", h.baseURL, user.Username),
		"referral_code":    user.Username,
		"total_referrals":  total,
		"active_referrals": active,
		"total_earnings":   earnings,
		"referrals":        invitees,
		"rewards":          rewards,
	})
}
