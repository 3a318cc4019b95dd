package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"MindfulChatGo/config"
	"MindfulChatGo/models"
	"MindfulChatGo/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *storage.GormStorage {
	t.Helper()
	db, err := config.OpenDB(sqlite.Open(filepath.Join(t.TempDir(), "services.db")), logger.Silent)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return storage.NewGormStorage(db)
}

// recordingResponder captures what the orchestrator hands to the generator.
type recordingResponder struct {
	history []models.HistoryTurn
	userCtx *UserContext
	resp    ChatResponse
}

func (r *recordingResponder) GenerateResponse(_ context.Context, _ string, history []models.HistoryTurn, userCtx *UserContext) ChatResponse {
	r.history = history
	r.userCtx = userCtx
	return r.resp
}

func TestHandleChatTurn(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv := &models.Conversation{UserID: "u1"}
	if err := store.CreateConversation(ctx, conv); err != nil {
		t.Fatal(err)
	}
	svc := NewChatService(store, NewTemplateResponder(), TemplateAnalyzer{})

	resp, err := svc.HandleChatTurn(ctx, "u1", models.ChatRequest{Message: "  I feel anxious and can't sleep ", ConversationID: conv.ID})
	if err != nil {
		t.Fatal(err)
	}

	if resp.UserMessage.Role != models.RoleUser || resp.UserMessage.Content != "I feel anxious and can't sleep" {
		t.Errorf("user message: %+v", resp.UserMessage)
	}
	if resp.UserMessage.Sentiment == nil || *resp.UserMessage.Sentiment != models.SentimentNegative {
		t.Errorf("user message should carry the pre-analysis sentiment")
	}
	if resp.AssistantMessage.Role != models.RoleAssistant || *resp.AssistantMessage.Sentiment != models.SentimentPositive {
		t.Errorf("assistant message: %+v", resp.AssistantMessage)
	}
	if len(resp.AssistantMessage.StressIndicators) != 0 {
		t.Errorf("assistant message should have no indicators")
	}
	if resp.Analysis.RequiresImmediate || len(resp.Analysis.SuggestedExercises) != 2 {
		t.Errorf("analysis: %+v", resp.Analysis)
	}

	messages, _ := store.GetMessages(ctx, conv.ID)
	if len(messages) != 2 || messages[0].ID != resp.UserMessage.ID || messages[1].ID != resp.AssistantMessage.ID {
		t.Fatalf("persisted messages out of order: %+v", messages)
	}

	updated, _ := store.GetConversation(ctx, conv.ID)
	if updated.Title != "I feel anxious and can't sleep" {
		t.Errorf("title: %q", updated.Title)
	}
}

func TestHandleChatTurnPassesHistoryAndContext(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv := &models.Conversation{UserID: "u1", Title: "kept"}
	store.CreateConversation(ctx, conv)
	for i := 0; i < 12; i++ {
		store.CreateMessage(ctx, &models.Message{ConversationID: conv.ID, Content: "earlier work talk", Role: models.RoleUser})
	}
	store.CreateMoodEntry(ctx, &models.MoodEntry{UserID: "u1", Mood: models.MoodTough, MoodScore: 3, Energy: 4, Anxiety: 8})

	responder := &recordingResponder{resp: ChatResponse{Message: "hi", Sentiment: models.SentimentNeutral, RequiresImmediate: true}}
	svc := NewChatService(store, responder, TemplateAnalyzer{})

	resp, err := svc.HandleChatTurn(ctx, "u1", models.ChatRequest{Message: "new message", ConversationID: conv.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(responder.history) != contextTurns {
		t.Errorf("history: got %d turns, want %d", len(responder.history), contextTurns)
	}
	for _, turn := range responder.history {
		if turn.Content == "new message" {
			t.Error("current message should not be duplicated into history")
		}
	}
	if responder.userCtx == nil || len(responder.userCtx.RecentMoods) != 1 || responder.userCtx.Themes[0] != "work" {
		t.Errorf("user context: %+v", responder.userCtx)
	}
	if !resp.Analysis.RequiresImmediate || resp.Analysis.StressIndicators == nil {
		t.Errorf("analysis: %+v", resp.Analysis)
	}

	updated, _ := store.GetConversation(ctx, conv.ID)
	if updated.Title != "kept" {
		t.Errorf("existing title overwritten: %q", updated.Title)
	}
}

func TestHandleChatTurnValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewChatService(store, NewTemplateResponder(), TemplateAnalyzer{})
	ctx := context.Background()

	for _, req := range []models.ChatRequest{
		{Message: "", ConversationID: 1},
		{Message: "   ", ConversationID: 1},
		{Message: "hi"},
	} {
		_, err := svc.HandleChatTurn(ctx, "u1", req)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("%+v: expected ValidationError, got %v", req, err)
		}
	}

	messages, _ := store.GetRecentUserMessages(ctx, "u1", 10)
	if len(messages) != 0 {
		t.Error("validation failures must not write anything")
	}
}

func TestHandleChatTurnForeignConversation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	conv := &models.Conversation{UserID: "owner"}
	store.CreateConversation(ctx, conv)

	svc := NewChatService(store, NewTemplateResponder(), TemplateAnalyzer{})
	if _, err := svc.HandleChatTurn(ctx, "intruder", models.ChatRequest{Message: "hi", ConversationID: conv.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.HandleChatTurn(ctx, "owner", models.ChatRequest{Message: "hi", ConversationID: 999}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a missing conversation, got %v", err)
	}
}

func TestConversationService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := NewConversationService(store)

	conv, err := svc.CreateConversation(ctx, "u1", models.CreateConversationRequest{Title: "Evening check-in"})
	if err != nil || conv.ID == 0 || conv.UserID != "u1" {
		t.Fatalf("create: %+v %v", conv, err)
	}

	list, err := svc.ListConversations(ctx, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %v", list, err)
	}
	if others, _ := svc.ListConversations(ctx, "u2"); len(others) != 0 {
		t.Errorf("other users must not see the conversation")
	}

	if _, err := svc.ListMessages(ctx, "u2", conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	messages, err := svc.ListMessages(ctx, "u1", conv.ID)
	if err != nil || messages == nil || len(messages) != 0 {
		t.Errorf("empty conversation should list []: %v %v", messages, err)
	}
}
