package controllers

import (
	"net/http"

	"MindfulChatGo/middleware"
	"MindfulChatGo/models"
	"MindfulChatGo/services"

	"github.com/gin-gonic/gin"
)

// AuthController 认证控制器
type AuthController struct {
	users         *services.UserService
	currentUserID middleware.CurrentUserID
}

func NewAuthController(users *services.UserService, currentUserID middleware.CurrentUserID) *AuthController {
	return &AuthController{users: users, currentUserID: currentUserID}
}

// GetUser 获取当前用户
func (ac *AuthController) GetUser(c *gin.Context) {
	uid, ok := requireUser(c, ac.currentUserID)
	if !ok {
		return
	}
	user, err := ac.users.GetUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Login exchanges an identity provider token for a session token
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "token is required")
		return
	}
	resp, err := ac.users.Login(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTestUser 创建测试用户
func (ac *AuthController) CreateTestUser(c *gin.Context) {
	resp, err := ac.users.CreateTestUser(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to create test user")
		return
	}
	c.JSON(http.StatusOK, resp)
}
