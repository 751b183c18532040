package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/service"
)

// ParticipantHandler 處理參與者列表與加入聊天室
type ParticipantHandler struct {
	registry    *service.Registry
	roomService *service.RoomService
	log         *slog.Logger
}

// NewParticipantHandler 創建一個新的 ParticipantHandler 實例
func NewParticipantHandler(registry *service.Registry, roomService *service.RoomService, log *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{registry: registry, roomService: roomService, log: log}
}

// JoinInput 定義加入聊天室請求的結構
type JoinInput struct {
	Name string `json:"name" binding:"required,max=15"`
}

// ListParticipants 回傳目前在線的參與者
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	participants, err := h.registry.List(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "list participants", err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// Join 加入聊天室，成功後會公告進入訊息
func (h *ParticipantHandler) Join(c *gin.Context) {
	var input JoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.roomService.Enter(c.Request.Context(), input.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "join", err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}
