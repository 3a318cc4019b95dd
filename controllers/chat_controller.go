package controllers

import (
	"net/http"

	"MindfulChatGo/middleware"
	"MindfulChatGo/models"
	"MindfulChatGo/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chatService   *services.ChatService
	currentUserID middleware.CurrentUserID
}

func NewChatController(chatService *services.ChatService, currentUserID middleware.CurrentUserID) *ChatController {
	return &ChatController{
		chatService:   chatService,
		currentUserID: currentUserID,
	}
}

// SendMessage handles one chat turn
func (cc *ChatController) SendMessage(c *gin.Context) {
	uid, ok := requireUser(c, cc.currentUserID)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Message and conversation ID required")
		return
	}

	resp, err := cc.chatService.HandleChatTurn(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err, "Failed to process chat message")
		return
	}
	c.JSON(http.StatusOK, resp)
}
