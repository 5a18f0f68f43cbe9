package handler

import (
	"fmt"
	"net/http"
	"time"

	"safechain/config"
	"safechain/internal/domain"
	"safechain/internal/middleware"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxProofSize = 10 << 20 // 10 MB

type DepositHandler struct {
	cfg      *config.Config
	deposits *repository.DepositRepository
	uploads  cloudinary.Client
}

func NewDepositHandler(cfg *config.Config, deposits *repository.DepositRepository, uploads cloudinary.Client) *DepositHandler {
	return &DepositHandler{cfg: cfg, deposits: deposits, uploads: uploads}
}

// Create accepts a multipart deposit submission. EFT deposits must carry a
// proof-of-payment image; cash deposits may omit it.
func (h *DepositHandler) Create(c *gin.Context) {
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	if amount.LessThan(h.cfg.Platform.MinDeposit) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("minimum deposit is R%s", h.cfg.Platform.MinDeposit.StringFixed(2)),
		})
		return
	}
	method := c.PostForm("payment_method")
	if method != domain.PaymentMethodEFT && method != domain.PaymentMethodCash {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_method must be eft or cash"})
		return
	}

	var proofURL string
	file, header, err := c.Request.FormFile("proof")
	if err == nil {
		defer file.Close()
		if header.Size > maxProofSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "proof image exceeds 10MB"})
			return
		}
		proofURL, err = h.uploads.UploadImage(c.Request.Context(), file, "deposits", uuid.New().String())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "proof upload failed"})
			return
		}
	}
	if method == domain.PaymentMethodEFT && proofURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eft deposits require proof of payment"})
		return
	}

	userID := middleware.GetUserID(c)
	dep := &models.Deposit{
		UserID:        userID,
		Amount:        amount,
		PaymentMethod: method,
		ProofImage:    proofURL,
		Status:        domain.StatusPending,
	}
	if err := h.deposits.Create(dep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit deposit"})
		return
	}

	// Surface the duplicate-submission heuristic to the client so support can
	// warn the user before review.
	flagged := false
	if recent, err := h.deposits.CountRecentByUser(userID, time.Now().Add(-24*time.Hour)); err == nil && recent > 3 {
		flagged = true
	}
	c.JSON(http.StatusCreated, gin.H{"deposit": dep, "flagged_for_review": flagged})
}

func (h *DepositHandler) List(c *gin.Context) {
	list, err := h.deposits.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deposits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposits": list})
}
