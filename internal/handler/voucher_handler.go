package handler

import (
	"net/http"

	"safechain/internal/domain"
	"safechain/internal/middleware"
	"safechain/internal/models"
	"safechain/internal/repository"
	"safechain/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VoucherHandler struct {
	vouchers *repository.VoucherRepository
	uploads  cloudinary.Client
}

func NewVoucherHandler(vouchers *repository.VoucherRepository, uploads cloudinary.Client) *VoucherHandler {
	return &VoucherHandler{vouchers: vouchers, uploads: uploads}
}

// Create accepts a voucher photo plus its face value. Credited on approval.
func (h *VoucherHandler) Create(c *gin.Context) {
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil || !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	file, header, err := c.Request.FormFile("voucher")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "voucher image is required"})
		return
	}
	defer file.Close()
	if header.Size > maxProofSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "voucher image exceeds 10MB"})
		return
	}
	url, err := h.uploads.UploadImage(c.Request.Context(), file, "vouchers", uuid.New().String())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "voucher upload failed"})
		return
	}

	v := &models.Voucher{
		UserID:       middleware.GetUserID(c),
		Amount:       amount,
		VoucherImage: url,
		Status:       domain.StatusPending,
	}
	if err := h.vouchers.Create(v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit voucher"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"voucher": v})
}

func (h *VoucherHandler) List(c *gin.Context) {
	list, err := h.vouchers.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load vouchers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": list})
}
