package models

import "strings"

// LoginRequest carries the identity provider token
type LoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// ChatRequest 聊天请求结构体
type ChatRequest struct {
	Message        string `json:"message" validate:"required"`
	ConversationID uint   `json:"conversationId" validate:"required"`
}

// Normalize trims the message so whitespace-only input fails validation.
func (r *ChatRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
}

// CreateConversationRequest 创建会话
type CreateConversationRequest struct {
	Title string `json:"title" binding:"max=200"`
}

// CompleteExerciseRequest 完成练习
type CompleteExerciseRequest struct {
	ExerciseID uint `json:"exerciseId" validate:"required"`
	Rating     *int `json:"rating" validate:"omitempty,min=1,max=5"`
}

// CreateMoodRequest 情绪打卡; missing scores default to 5, out-of-range scores are clamped
type CreateMoodRequest struct {
	Mood      Mood   `json:"mood" validate:"required,oneof=great good okay tough crisis"`
	MoodScore *int   `json:"moodScore"`
	Energy    *int   `json:"energy"`
	Anxiety   *int   `json:"anxiety"`
	Notes     string `json:"notes" validate:"max=2000"`
}

func (r *CreateMoodRequest) ToEntry(userID string) MoodEntry {
	return MoodEntry{
		UserID:    userID,
		Mood:      r.Mood,
		MoodScore: scoreOrDefault(r.MoodScore),
		Energy:    scoreOrDefault(r.Energy),
		Anxiety:   scoreOrDefault(r.Anxiety),
		Notes:     r.Notes,
	}
}

func scoreOrDefault(score *int) int {
	if score == nil {
		return DefaultScore
	}
	return ClampScore(*score)
}
