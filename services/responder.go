package services

import (
	"context"

	"MindfulChatGo/models"
)

const historyWindow = 6

// ChatResponse is the generator contract result.
type ChatResponse struct {
	Message            string           `json:"message"`
	Sentiment          models.Sentiment `json:"sentiment"`
	StressIndicators   []string         `json:"stressIndicators"`
	SuggestedExercises []string         `json:"suggestedExercises"`
	RequiresImmediate  bool             `json:"requiresImmediate"`
}

func (r ChatResponse) Analysis() models.ChatAnalysis {
	return models.ChatAnalysis{
		Sentiment:          r.Sentiment,
		StressIndicators:   nonNil(r.StressIndicators),
		SuggestedExercises: nonNil(r.SuggestedExercises),
		RequiresImmediate:  r.RequiresImmediate,
	}
}

// SentimentResult is the pre-analysis of a single user message.
type SentimentResult struct {
	Sentiment        models.Sentiment `json:"sentiment"`
	Confidence       float64          `json:"confidence"`
	StressIndicators []string         `json:"stressIndicators"`
}

// UserContext summarises recent activity for the system prompt.
type UserContext struct {
	RecentMoods     []models.MoodEntry
	RecentExercises []string
	Themes          []string
}

func (u *UserContext) Empty() bool {
	return u == nil || (len(u.RecentMoods) == 0 && len(u.RecentExercises) == 0 && len(u.Themes) == 0)
}

// ResponseGenerator never fails: upstream problems are absorbed into a safe reply.
type ResponseGenerator interface {
	GenerateResponse(ctx context.Context, userMessage string, history []models.HistoryTurn, userCtx *UserContext) ChatResponse
}

// SentimentAnalyzer never fails either.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, message string) SentimentResult
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// lastTurns keeps the newest n turns.
func lastTurns(history []models.HistoryTurn, n int) []models.HistoryTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
