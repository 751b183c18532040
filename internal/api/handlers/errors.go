package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// internalError 記錄資料庫錯誤，對外只回傳一般性的失敗訊息
func internalError(c *gin.Context, log *slog.Logger, op string, err error) {
	log.Error("Request failed", "op", op, "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
