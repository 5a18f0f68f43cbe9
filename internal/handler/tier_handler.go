package handler

import (
	"errors"
	"net/http"
	"time"

	"safechain/internal/middleware"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TierHandler struct {
	users       *repository.UserRepository
	tiers       *repository.TierRepository
	investments *repository.InvestmentRepository
	specials    *repository.SpecialRepository
	invSvc      *service.InvestmentService
}

func NewTierHandler(users *repository.UserRepository, tiers *repository.TierRepository, investments *repository.InvestmentRepository, specials *repository.SpecialRepository, invSvc *service.InvestmentService) *TierHandler {
	return &TierHandler{users: users, tiers: tiers, investments: investments, specials: specials, invSvc: invSvc}
}

type tierView struct {
	models.InvestmentTier
	Locked          bool            `json:"locked"`
	HasActive       bool            `json:"has_active"`
	EffectiveReturn decimal.Decimal `json:"effective_return"`
	Special         *specialView    `json:"special,omitempty"`
}

type specialView struct {
	Multiplier decimal.Decimal `json:"multiplier"`
	EndsAt     time.Time       `json:"ends_at"`
}

// List returns every tier annotated for the signed-in user: locked by level,
// whether they already hold an active investment, and any live special.
// Matured investments settle first, so a tier frees up for reinvestment the
// moment its term ends.
func (h *TierHandler) List(c *gin.Context) {
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
	tiers, err := h.tiers.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tiers"})
		return
	}

	special, err := h.specials.ActiveAt(time.Now())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load specials"})
		return
	}

	views := make([]tierView, 0, len(tiers))
	for _, t := range tiers {
		v := tierView{
			InvestmentTier:  t,
			Locked:          user.Level < t.MinLevel,
			EffectiveReturn: t.ReturnAmount,
		}
		if _, err := h.investments.ActiveByUserAndTier(user.ID, t.ID); err == nil {
			v.HasActive = true
		}
		if special != nil && special.TierID == t.ID {
			v.EffectiveReturn = t.ReturnAmount.Mul(special.SpecialReturnMultiplier)
			v.Special = &specialView{
				Multiplier: special.SpecialReturnMultiplier,
				EndsAt:     special.EndTime,
			}
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{"tiers": views, "level": user.Level})
}
