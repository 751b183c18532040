package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserHeader 攜帶參與者名稱的 header
const UserHeader = "User"

const userKey = "user"

// Identity 從 User header 讀取參與者名稱並設定到上下文中
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userKey, strings.TrimSpace(c.GetHeader(UserHeader)))
		c.Next()
	}
}

// RequireUser 沒有 User header 時直接回傳 401
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User header is required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 取得 Identity 設定的參與者名稱，沒有時回傳空字串
func CurrentUser(c *gin.Context) string {
	return c.GetString(userKey)
}
