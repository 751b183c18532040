package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chat_relay/internal/middleware"
	"chat_relay/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 與 CORS 設定一致，允許任何來源
	},
}

// FeedHandler 提供即時訊息推送
type FeedHandler struct {
	feed     *service.FeedService
	registry *service.Registry
	log      *slog.Logger
}

func NewFeedHandler(feed *service.FeedService, registry *service.Registry, log *slog.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, registry: registry, log: log}
}

// HandleWebSocket 瀏覽器無法自訂 header，因此也接受 ?user= 參數
func (h *FeedHandler) HandleWebSocket(c *gin.Context) {
	reader := middleware.CurrentUser(c)
	if reader == "" {
		reader = c.Query("user")
	}

	exists, err := h.registry.Exists(c.Request.Context(), reader)
	if err != nil {
		internalError(c, h.log, "feed", err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrParticipantNotFound.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失敗時已經回應錯誤
		h.log.Debug("Websocket upgrade failed", "reader", reader, "err", err)
		return
	}

	h.feed.HandleConnection(c.Request.Context(), conn, reader)
}
