package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/middleware"
	"chat_relay/internal/models"
	"chat_relay/internal/service"
)

// MessageHandler 處理訊息的查詢、發送與刪除
type MessageHandler struct {
	messages *service.MessageLog
	log      *slog.Logger
}

// NewMessageHandler 創建一個新的 MessageHandler 實例
func NewMessageHandler(messages *service.MessageLog, log *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

// PostMessageInput 定義發送訊息請求的結構，發送者來自 User header
type PostMessageInput struct {
	To   string `json:"to" binding:"required"`
	Text string `json:"text" binding:"required"`
	Type string `json:"type" binding:"required,oneof=message private_message"`
}

// ListMessages 回傳 User header 對應讀者可見的訊息，limit 為空或 <= 0 時回傳全部
func (h *MessageHandler) ListMessages(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}

	messages, err := h.messages.VisibleTo(c.Request.Context(), middleware.CurrentUser(c), limit)
	if err != nil {
		internalError(c, h.log, "list messages", err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// PostMessage 發送公開或私人訊息
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var input PostMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Append(c.Request.Context(), service.MessageInput{
		From: middleware.CurrentUser(c),
		To:   input.To,
		Text: input.Text,
		Type: models.MessageType(input.Type),
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrUnknownSender) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "post message", err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// DeleteMessage 刪除自己發出的訊息
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	err := h.messages.DeleteOwn(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "訊息已刪除"})
	case errors.Is(err, service.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		internalError(c, h.log, "delete message", err)
	}
}
