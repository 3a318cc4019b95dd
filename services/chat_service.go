package services

import (
	"context"
	"errors"

	"MindfulChatGo/config"
	"MindfulChatGo/models"
	"MindfulChatGo/storage"
	"MindfulChatGo/utils"
)

const (
	contextTurns     = 10
	contextMoods     = 5
	contextExercises = 5
	themeMessages    = 20
)

type ChatService struct {
	store     storage.Storage
	responder ResponseGenerator
	analyzer  SentimentAnalyzer
}

func NewChatService(store storage.Storage, responder ResponseGenerator, analyzer SentimentAnalyzer) *ChatService {
	return &ChatService{
		store:     store,
		responder: responder,
		analyzer:  analyzer,
	}
}

// HandleChatTurn persists the user message, generates and persists the reply.
// The user message stays persisted if a later step fails.
func (s *ChatService) HandleChatTurn(ctx context.Context, userID string, req models.ChatRequest) (*models.ChatTurnResponse, error) {
	resp, err := s.handleChatTurn(ctx, userID, req)
	utils.ChatTurns.WithLabelValues(turnOutcome(err)).Inc()
	return resp, err
}

func (s *ChatService) handleChatTurn(ctx context.Context, userID string, req models.ChatRequest) (*models.ChatTurnResponse, error) {
	req.Normalize()
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	conversation, err := ownedConversation(ctx, s.store, userID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzer.AnalyzeSentiment(ctx, req.Message)
	userMessage := &models.Message{
		ConversationID:   conversation.ID,
		Content:          req.Message,
		Role:             models.RoleUser,
		Sentiment:        &analysis.Sentiment,
		StressIndicators: nonNil(analysis.StressIndicators),
	}
	if err := s.store.CreateMessage(ctx, userMessage); err != nil {
		return nil, persistErr("save user message", err)
	}

	messages, err := s.store.GetMessages(ctx, conversation.ID)
	if err != nil {
		return nil, persistErr("load history", err)
	}
	history := make([]models.HistoryTurn, 0, len(messages))
	for i := range messages {
		if messages[i].ID == userMessage.ID {
			continue
		}
		history = append(history, messages[i].Turn())
	}
	history = lastTurns(history, contextTurns)

	userCtx := s.buildUserContext(ctx, userID)
	generated := s.responder.GenerateResponse(ctx, req.Message, history, userCtx)
	if generated.RequiresImmediate {
		utils.CrisisFlags.Inc()
		config.Logger.Warnw("检测到危机信号", "uid", userID, "conversationID", conversation.ID)
	}

	assistantSentiment := models.SentimentPositive
	assistantMessage := &models.Message{
		ConversationID:   conversation.ID,
		Content:          generated.Message,
		Role:             models.RoleAssistant,
		Sentiment:        &assistantSentiment,
		StressIndicators: []string{},
	}
	if err := s.store.CreateMessage(ctx, assistantMessage); err != nil {
		return nil, persistErr("save assistant message", err)
	}

	if err := s.store.TouchConversation(ctx, conversation.ID, models.TitleFromMessage(req.Message)); err != nil {
		config.Logger.Errorw("更新会话失败", "error", err, "conversationID", conversation.ID)
	}

	return &models.ChatTurnResponse{
		UserMessage:      *userMessage,
		AssistantMessage: *assistantMessage,
		Analysis:         generated.Analysis(),
	}, nil
}

// buildUserContext is best effort; any failure drops the context for this turn.
func (s *ChatService) buildUserContext(ctx context.Context, userID string) *UserContext {
	moods, err := s.store.GetUserMoodEntries(ctx, userID, contextMoods)
	if err != nil {
		config.Logger.Errorw("获取情绪记录失败", "error", err, "uid", userID)
		return nil
	}
	completions, err := s.store.GetUserRecentExerciseCompletions(ctx, userID, contextExercises)
	if err != nil {
		config.Logger.Errorw("获取练习记录失败", "error", err, "uid", userID)
		return nil
	}
	recent, err := s.store.GetRecentUserMessages(ctx, userID, themeMessages)
	if err != nil {
		config.Logger.Errorw("获取历史消息失败", "error", err, "uid", userID)
		return nil
	}

	exercises := make([]string, 0, len(completions))
	for _, c := range completions {
		exercises = append(exercises, c.ExerciseTitle)
	}
	return &UserContext{
		RecentMoods:     moods,
		RecentExercises: exercises,
		Themes:          ExtractThemes(recent),
	}
}

func turnOutcome(err error) string {
	var validationErr *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
