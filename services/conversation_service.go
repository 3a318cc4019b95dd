package services

import (
	"context"

	"MindfulChatGo/models"
	"MindfulChatGo/storage"
)

type ConversationService struct {
	store storage.Storage
}

func NewConversationService(store storage.Storage) *ConversationService {
	return &ConversationService{store: store}
}

func (s *ConversationService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	conversations, err := s.store.GetConversations(ctx, userID)
	if err != nil {
		return nil, persistErr("list conversations", err)
	}
	return conversations, nil
}

func (s *ConversationService) CreateConversation(ctx context.Context, userID string, req models.CreateConversationRequest) (*models.Conversation, error) {
	conversation := &models.Conversation{UserID: userID, Title: req.Title}
	if err := s.store.CreateConversation(ctx, conversation); err != nil {
		return nil, persistErr("create conversation", err)
	}
	return conversation, nil
}

func (s *ConversationService) ListMessages(ctx context.Context, userID string, conversationID uint) ([]models.Message, error) {
	if _, err := ownedConversation(ctx, s.store, userID, conversationID); err != nil {
		return nil, err
	}
	messages, err := s.store.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, persistErr("list messages", err)
	}
	return messages, nil
}

// ownedConversation hides conversations of other users behind ErrNotFound.
func ownedConversation(ctx context.Context, store storage.Storage, userID string, id uint) (*models.Conversation, error) {
	conversation, err := store.GetConversation(ctx, id)
	if err != nil {
		return nil, persistErr("get conversation", err)
	}
	if conversation.UserID != userID {
		return nil, ErrNotFound
	}
	return conversation, nil
}
