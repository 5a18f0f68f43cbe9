package handler

import (
	"errors"
	"net/http"
	"strconv"

	"safechain/internal/middleware"
	"safechain/internal/repository"
	"safechain/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InvestmentHandler struct {
	investments *repository.InvestmentRepository
	invSvc      *service.InvestmentService
}

func NewInvestmentHandler(investments *repository.InvestmentRepository, invSvc *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investments: investments, invSvc: invSvc}
}

type investRequest struct {
	TierID uint `json:"tier_id" binding:"required"`
}

func (h *InvestmentHandler) Invest(c *gin.Context) {
	var req investRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := h.invSvc.Invest(middleware.GetUserID(c), req.TierID, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		case errors.Is(err, service.ErrTierLocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "tier requires a higher level"})
		case errors.Is(err, service.ErrDuplicateInvestment):
			c.JSON(http.StatusConflict, gin.H{"error": "you already have an active investment in this tier"})
		case errors.Is(err, repository.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "insufficient wallet balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "investment failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"investment": inv})
}

func (h *InvestmentHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if _, err := h.invSvc.SettleMatured(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to settle investments"})
		return
	}
	list, err := h.investments.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load investments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": list})
}

func (h *InvestmentHandler) CashOut(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid investment id"})
		return
	}
	inv, err := h.invSvc.CashOut(middleware.GetUserID(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "investment not found"})
		case errors.Is(err, service.ErrNotMatured):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "investment has not matured yet"})
		case errors.Is(err, service.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": "investment already paid out"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cash out failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"investment": inv})
}

func (h *InvestmentHandler) CheckCashOut(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid investment id"})
		return
	}
	status, err := h.invSvc.CheckCashOut(middleware.GetUserID(c), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "investment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check investment"})
		return
	}
	c.JSON(http.StatusOK, status)
}
