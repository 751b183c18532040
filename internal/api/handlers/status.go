package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/middleware"
	"chat_relay/internal/service"
)

// StatusHandler 處理參與者的心跳
type StatusHandler struct {
	registry *service.Registry
	log      *slog.Logger
}

func NewStatusHandler(registry *service.Registry, log *slog.Logger) *StatusHandler {
	return &StatusHandler{registry: registry, log: log}
}

// Heartbeat 更新 User header 對應參與者的最後心跳時間
func (h *StatusHandler) Heartbeat(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrParticipantNotFound.Error()})
		return
	}

	if err := h.registry.Touch(c.Request.Context(), user); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "heartbeat", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
