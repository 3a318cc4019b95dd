package services

import (
	"context"
	"errors"

	"MindfulChatGo/config"
	"MindfulChatGo/models"
	"MindfulChatGo/storage"
	"MindfulChatGo/utils"
)

// ErrUnauthorized is returned for identity tokens that fail verification.
var ErrUnauthorized = errors.New("invalid identity token")

var demoEmail = "demo@example.com"

type UserService struct {
	store storage.Storage
}

func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, persistErr("get user", err)
	}
	return user, nil
}

// Login verifies an identity token, upserts the user and issues a session token.
func (s *UserService) Login(ctx context.Context, identityToken string) (*models.LoginResponse, error) {
	claims, err := utils.ParseToken(identityToken)
	if err != nil {
		config.Logger.Infow("身份令牌校验失败", "error", err)
		return nil, ErrUnauthorized
	}
	return s.issue(ctx, claims.User())
}

// CreateTestUser upserts the demo account used by the CLI demo.
func (s *UserService) CreateTestUser(ctx context.Context) (*models.LoginResponse, error) {
	email := demoEmail
	return s.issue(ctx, &models.User{
		ID:        "demo-user",
		Email:     &email,
		FirstName: "Demo",
		LastName:  "User",
	})
}

func (s *UserService) issue(ctx context.Context, profile *models.User) (*models.LoginResponse, error) {
	user, err := s.store.UpsertUser(ctx, profile)
	if err != nil {
		return nil, persistErr("upsert user", err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	config.Logger.Infow("用户登录", "userID", user.ID)
	return &models.LoginResponse{Token: token, User: *user}, nil
}
