package handler

import (
	"net/http"

	"safechain/internal/middleware"
	"safechain/internal/repository"
	"safechain/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	users   *repository.UserRepository
	uploads cloudinary.Client
}

func NewProfileHandler(users *repository.UserRepository, uploads cloudinary.Client) *ProfileHandler {
	return &ProfileHandler{users: users, uploads: uploads}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	Phone        *string `json:"phone"`
	AutoReinvest *bool   `json:"auto_reinvest"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.AutoReinvest != nil {
		user.AutoReinvest = *req.AutoReinvest
	}
	if err := h.users.Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *ProfileHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()
	if header.Size > maxProofSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 10MB"})
		return
	}
	url, err := h.uploads.UploadImage(c.Request.Context(), file, "profiles", uuid.New().String())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}
	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	user.ProfileImage = url
	if err := h.users.Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_image": url})
}
