package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"safechain/internal/middleware"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminHandler is the back office: reviewing deposits, withdrawals and
// vouchers, managing users, tiers and specials, and reading the audit trail.
type AdminHandler struct {
	users       *repository.UserRepository
	deposits    *repository.DepositRepository
	withdrawals *repository.WithdrawalRepository
	vouchers    *repository.VoucherRepository
	tiers       *repository.TierRepository
	specials    *repository.SpecialRepository
	audit       *repository.AuditRepository
	backups     *repository.BackupRepository
	wallets     *repository.WalletRepository
	approvals   *service.ApprovalService
}

func NewAdminHandler(
	users *repository.UserRepository,
	deposits *repository.DepositRepository,
	withdrawals *repository.WithdrawalRepository,
	vouchers *repository.VoucherRepository,
	tiers *repository.TierRepository,
	specials *repository.SpecialRepository,
	audit *repository.AuditRepository,
	backups *repository.BackupRepository,
	wallets *repository.WalletRepository,
	approvals *service.ApprovalService,
) *AdminHandler {
	return &AdminHandler{
		users:       users,
		deposits:    deposits,
		withdrawals: withdrawals,
		vouchers:    vouchers,
		tiers:       tiers,
		specials:    specials,
		audit:       audit,
		backups:     backups,
		wallets:     wallets,
		approvals:   approvals,
	}
}

// Dashboard summarizes the review queues and platform totals.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	pending, approved, rejected, pendingAmount, err := h.deposits.StatusCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deposit stats"})
		return
	}
	userCount, err := h.users.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user stats"})
		return
	}
	recent, err := h.audit.ListRecent("", 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deposits": gin.H{
			"pending":        pending,
			"approved":       approved,
			"rejected":       rejected,
			"pending_amount": pendingAmount,
		},
		"total_users":     userCount,
		"recent_activity": recent,
	})
}

// -- deposits ---------------------------------------------------------------

func (h *AdminHandler) ListDeposits(c *gin.Context) {
	page, limit := pagination(c)
	list, total, err := h.deposits.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deposits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": list, "total": total, "page": page})
}

func (h *AdminHandler) ApproveDeposit(c *gin.Context) {
	h.decide(c, "deposit", h.approvals.ApproveDeposit)
}

func (h *AdminHandler) RejectDeposit(c *gin.Context) {
	h.decide(c, "deposit", h.approvals.RejectDeposit)
}

type bulkDepositsRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

func (h *AdminHandler) BulkDeposits(c *gin.Context) {
	var req bulkDepositsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.approvals.BulkDeposits(req.IDs, req.Action, middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) VerifyDeposits(c *gin.Context) {
	res, err := h.approvals.VerifyDeposits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// -- withdrawals ------------------------------------------------------------

func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
	page, limit := pagination(c)
	list, total, err := h.withdrawals.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list, "total": total, "page": page})
}

func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	h.decide(c, "withdrawal", h.approvals.ApproveWithdrawal)
}

func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	h.decide(c, "withdrawal", h.approvals.RejectWithdrawal)
}

// -- vouchers ---------------------------------------------------------------

func (h *AdminHandler) ListVouchers(c *gin.Context) {
	page, limit := pagination(c)
	list, total, err := h.vouchers.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load vouchers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": list, "total": total, "page": page})
}

func (h *AdminHandler) ApproveVoucher(c *gin.Context) {
	h.decide(c, "voucher", h.approvals.ApproveVoucher)
}

func (h *AdminHandler) RejectVoucher(c *gin.Context) {
	h.decide(c, "voucher", h.approvals.RejectVoucher)
}

// -- users ------------------------------------------------------------------

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pagination(c)
	users, total, err := h.users.List(c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total, "page": page})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	wallet, err := h.wallets.GetOrCreate(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}
	deposits, err := h.deposits.ListByUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deposits"})
		return
	}
	withdrawals, err := h.withdrawals.ListByUser(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"wallet":      wallet,
		"deposits":    deposits,
		"withdrawals": withdrawals,
	})
}

type promoteRequest struct {
	Level int `json:"level" binding:"required,min=1,max=3"`
}

// PromoteUser sets a user's level by hand, for accounts that qualify outside
// the invested-amount thresholds. Later investments never lower it again.
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req promoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	user.Level = req.Level
	if err := h.users.Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	h.audit.Log(middleware.GetUserID(c), "promote_user", "User", &user.ID, fmt.Sprintf("level %d", req.Level))
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	adminID := middleware.GetUserID(c)
	if id == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}
	if err := h.users.DeleteWithRelated(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	h.audit.Log(adminID, "delete_user", "User", &id, "")
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// -- tiers ------------------------------------------------------------------

type tierRequest struct {
	Name         string          `json:"name" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	ReturnAmount decimal.Decimal `json:"return_amount" binding:"required"`
	DurationDays int             `json:"duration_days" binding:"required,min=1"`
	MinLevel     int             `json:"min_level" binding:"min=1,max=3"`
	LogoURL      string          `json:"logo_url"`
	Description  string          `json:"description"`
}

func (h *AdminHandler) CreateTier(c *gin.Context) {
	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MinLevel == 0 {
		req.MinLevel = 1
	}
	tier := &models.InvestmentTier{
		Name:         req.Name,
		Amount:       req.Amount,
		ReturnAmount: req.ReturnAmount,
		DurationDays: req.DurationDays,
		MinLevel:     req.MinLevel,
		LogoURL:      req.LogoURL,
		Description:  req.Description,
	}
	if err := h.tiers.Create(tier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tier"})
		return
	}
	h.audit.Log(middleware.GetUserID(c), "create_tier", "InvestmentTier", &tier.ID, tier.Name)
	c.JSON(http.StatusCreated, gin.H{"tier": tier})
}

func (h *AdminHandler) UpdateTier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tier, err := h.tiers.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tier"})
		return
	}
	var req tierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tier.Name = req.Name
	tier.Amount = req.Amount
	tier.ReturnAmount = req.ReturnAmount
	tier.DurationDays = req.DurationDays
	if req.MinLevel > 0 {
		tier.MinLevel = req.MinLevel
	}
	tier.LogoURL = req.LogoURL
	tier.Description = req.Description
	if err := h.tiers.Update(tier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tier"})
		return
	}
	h.audit.Log(middleware.GetUserID(c), "update_tier", "InvestmentTier", &tier.ID, tier.Name)
	c.JSON(http.StatusOK, gin.H{"tier": tier})
}

// -- daily specials ---------------------------------------------------------

type specialRequest struct {
	TierID     uint            `json:"tier_id" binding:"required"`
	StartTime  time.Time       `json:"start_time" binding:"required"`
	EndTime    time.Time       `json:"end_time" binding:"required"`
	Multiplier decimal.Decimal `json:"multiplier" binding:"required"`
}

func (h *AdminHandler) CreateSpecial(c *gin.Context) {
	var req specialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.EndTime.After(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be after start_time"})
		return
	}
	if req.Multiplier.LessThanOrEqual(decimal.NewFromInt(1)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multiplier must be greater than 1"})
		return
	}
	if _, err := h.tiers.GetByID(req.TierID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tier not found"})
		return
	}
	sp := &models.DailySpecial{
		TierID:                  req.TierID,
		StartTime:               req.StartTime,
		EndTime:                 req.EndTime,
		SpecialReturnMultiplier: req.Multiplier,
		IsActive:                true,
	}
	if err := h.specials.Create(sp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create special"})
		return
	}
	h.audit.Log(middleware.GetUserID(c), "create_special", "DailySpecial", &sp.ID, "")
	c.JSON(http.StatusCreated, gin.H{"special": sp})
}

func (h *AdminHandler) ListSpecials(c *gin.Context) {
	list, err := h.specials.List(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load specials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"specials": list})
}

// -- activity log and backups -----------------------------------------------

func (h *AdminHandler) ActivityLog(c *gin.Context) {
	page, limit := pagination(c)
	list, total, err := h.audit.List(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": list, "total": total, "page": page})
}

func (h *AdminHandler) ListBackups(c *gin.Context) {
	list, err := h.backups.List(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load backups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": list})
}

// RecordBackup registers a completed external dump so the back office can see
// when the database was last backed up. The dump itself runs out of band.
type backupRequest struct {
	FileName string `json:"file_name" binding:"required"`
	Size     int64  `json:"size" binding:"min=0"`
	Status   string `json:"status" binding:"required,oneof=success failed in_progress"`
	Notes    string `json:"notes"`
}

func (h *AdminHandler) RecordBackup(c *gin.Context) {
	var req backupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := &models.Backup{
		FileName: req.FileName,
		Size:     req.Size,
		Status:   req.Status,
		Notes:    req.Notes,
	}
	if err := h.backups.Create(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record backup"})
		return
	}
	h.audit.Log(middleware.GetUserID(c), "record_backup", "Backup", &b.ID, b.FileName)
	c.JSON(http.StatusCreated, gin.H{"backup": b})
}

// -- helpers ----------------------------------------------------------------

type decisionRequest struct {
	Notes string `json:"notes"`
}

// decide parses the target ID and notes, runs the approval service call and
// maps its sentinel errors onto HTTP statuses.
func (h *AdminHandler) decide(c *gin.Context, kind string, fn func(id, adminID uint, notes string) error) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req decisionRequest
	_ = c.ShouldBindJSON(&req)

	err := fn(id, middleware.GetUserID(c), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": kind + " not found"})
		case errors.Is(err, service.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": kind + " already processed"})
		case errors.Is(err, service.ErrMissingProof):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "deposit has no proof of payment"})
		case errors.Is(err, repository.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user wallet has insufficient balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to process %s", kind)})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": kind + " processed"})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
