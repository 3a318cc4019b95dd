package middleware

import (
	"net/http"

	"MindfulChatGo/models"

	"github.com/gin-gonic/gin"
)

// DevOnly hides demo and maintenance routes in production.
func DevOnly(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProduction {
			c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Message: "Not found"})
			return
		}
		c.Next()
	}
}
