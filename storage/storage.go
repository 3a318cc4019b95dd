package storage

import (
	"context"
	"errors"

	"MindfulChatGo/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Storage is the persistence contract for the six entities.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpsertUser(ctx context.Context, user *models.User) (*models.User, error)

	// Conversations
	GetConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conversation *models.Conversation) error
	TouchConversation(ctx context.Context, id uint, title string) error

	// Messages
	GetMessages(ctx context.Context, conversationID uint) ([]models.Message, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	GetRecentUserMessages(ctx context.Context, userID string, limit int) ([]models.Message, error)

	// Exercises
	GetExercises(ctx context.Context, category models.ExerciseCategory) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id uint) (*models.Exercise, error)
	CountExercises(ctx context.Context) (int64, error)
	CreateExercises(ctx context.Context, exercises []models.Exercise) error
	CreateExerciseCompletion(ctx context.Context, completion *models.ExerciseCompletion) error
	GetUserRecentExerciseCompletions(ctx context.Context, userID string, limit int) ([]models.CompletionWithTitle, error)

	// Mood
	CreateMoodEntry(ctx context.Context, entry *models.MoodEntry) error
	GetUserMoodEntries(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error)
}
