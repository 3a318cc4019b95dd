package controllers

import (
	"errors"
	"net/http"

	"MindfulChatGo/config"
	"MindfulChatGo/middleware"
	"MindfulChatGo/models"
	"MindfulChatGo/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. fallback is the 500 message.
func respondError(c *gin.Context, err error, fallback string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: validationErr.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Unauthorized"})
	default:
		config.Logger.Errorw(fallback,
			"error", err,
			"requestID", c.GetString(middleware.RequestIDKey),
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: fallback})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: message})
}

// requireUser writes a 401 when no user is attached to the request.
func requireUser(c *gin.Context, currentUserID middleware.CurrentUserID) (string, bool) {
	uid, ok := currentUserID(c)
	if !ok {
		config.Logger.Errorw("未获取到用户ID", "path", c.Request.URL.Path)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Unauthorized"})
		return "", false
	}
	return uid, true
}
