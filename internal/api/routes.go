package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/api/handlers"
	"chat_relay/internal/middleware"
	"chat_relay/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, log *slog.Logger) {
	// 初始化 handlers
	participantHandler := handlers.NewParticipantHandler(services.Registry, services.Room, log)
	messageHandler := handlers.NewMessageHandler(services.Messages, log)
	statusHandler := handlers.NewStatusHandler(services.Registry, log)
	feedHandler := handlers.NewFeedHandler(services.Feed, services.Registry, log)

	r.Use(middleware.CORS(), middleware.Identity())

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 基本的健康檢查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// 參與者
	r.GET("/participants", participantHandler.ListParticipants)
	r.POST("/participants", participantHandler.Join)

	// 心跳
	r.POST("/status", statusHandler.Heartbeat)

	// 訊息
	messages := r.Group("/messages")
	{
		messages.GET("", messageHandler.ListMessages)
		messages.POST("", messageHandler.PostMessage)
		messages.DELETE("/:id", middleware.RequireUser(), messageHandler.DeleteMessage)

		// WebSocket 即時推送
		messages.GET("/ws", feedHandler.HandleWebSocket)
	}
}
