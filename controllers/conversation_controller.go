package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"MindfulChatGo/middleware"
	"MindfulChatGo/models"
	"MindfulChatGo/services"

	"github.com/gin-gonic/gin"
)

type ConversationController struct {
	conversations *services.ConversationService
	currentUserID middleware.CurrentUserID
}

func NewConversationController(conversations *services.ConversationService, currentUserID middleware.CurrentUserID) *ConversationController {
	return &ConversationController{conversations: conversations, currentUserID: currentUserID}
}

func (cc *ConversationController) List(c *gin.Context) {
	uid, ok := requireUser(c, cc.currentUserID)
	if !ok {
		return
	}
	conversations, err := cc.conversations.ListConversations(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err, "Failed to fetch conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (cc *ConversationController) Create(c *gin.Context) {
	uid, ok := requireUser(c, cc.currentUserID)
	if !ok {
		return
	}
	var req models.CreateConversationRequest
	// 空请求体视为未命名会话
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid conversation: "+err.Error())
		return
	}
	conversation, err := cc.conversations.CreateConversation(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err, "Failed to create conversation")
		return
	}
	c.JSON(http.StatusOK, conversation)
}

func (cc *ConversationController) ListMessages(c *gin.Context) {
	uid, ok := requireUser(c, cc.currentUserID)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid conversation ID")
		return
	}
	messages, err := cc.conversations.ListMessages(c.Request.Context(), uid, uint(id))
	if err != nil {
		respondError(c, err, "Failed to fetch messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}
