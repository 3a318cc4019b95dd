package middleware

import (
	"net/http"

	"MindfulChatGo/models"
	"MindfulChatGo/utils"

	"github.com/gin-gonic/gin"
)

const userIDKey = "uid"

// AuthMiddleware 认证中间件, accepts "Bearer <jwt>" or the bare token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Unauthorized"})
			return
		}

		// 解析 JWT
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Unauthorized"})
			return
		}

		// 将 uid 存储在 gin.Context 中
		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

// CurrentUserID resolves the authenticated user for a request.
type CurrentUserID func(c *gin.Context) (string, bool)

// UserIDFromContext reads the id AuthMiddleware stored.
func UserIDFromContext(c *gin.Context) (string, bool) {
	uid := c.GetString(userIDKey)
	return uid, uid != ""
}
