package handler

import (
	"errors"
	"net/http"

	"safechain/internal/middleware"
	"safechain/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := h.chat.Ask(middleware.GetUserID(c), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrChatQuotaExceeded) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily chat limit reached, try again tomorrow"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat failed"})
		return
	}
	c.JSON(http.StatusOK, reply)
}
