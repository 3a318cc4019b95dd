package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MindfulChatGo/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage implements Storage over any gorm dialector.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpsertUser creates the user on first login and refreshes profile fields afterwards.
func (s *GormStorage) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	return s.GetUser(ctx, user.ID)
}

func (s *GormStorage) GetConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	conversations := []models.Conversation{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc, id desc").
		Find(&conversations).Error
	return conversations, err
}

func (s *GormStorage) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.WithContext(ctx).First(&conversation, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &conversation, nil
}

func (s *GormStorage) CreateConversation(ctx context.Context, conversation *models.Conversation) error {
	return s.db.WithContext(ctx).Create(conversation).Error
}

// TouchConversation bumps updated_at and fills the title only while it is still empty.
func (s *GormStorage) TouchConversation(ctx context.Context, id uint, title string) error {
	result := s.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"updated_at": time.Now().UTC(),
			"title":      gorm.Expr("CASE WHEN COALESCE(title, '') = '' THEN ? ELSE title END", title),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStorage) GetMessages(ctx context.Context, conversationID uint) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp asc, id asc").
		Find(&messages).Error
	return messages, err
}

func (s *GormStorage) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.db.WithContext(ctx).Create(message).Error
}

// GetRecentUserMessages returns the newest user-authored messages across all of the user's conversations.
func (s *GormStorage) GetRecentUserMessages(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.db.WithContext(ctx).
		Select("messages.*").
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("conversations.user_id = ? AND messages.role = ?", userID, models.RoleUser).
		Order("messages.timestamp desc, messages.id desc").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (s *GormStorage) GetExercises(ctx context.Context, category models.ExerciseCategory) ([]models.Exercise, error) {
	exercises := []models.Exercise{}
	query := s.db.WithContext(ctx).Order("id asc")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&exercises).Error
	return exercises, err
}

func (s *GormStorage) GetExercise(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := s.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &exercise, nil
}

func (s *GormStorage) CountExercises(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Exercise{}).Count(&count).Error
	return count, err
}

func (s *GormStorage) CreateExercises(ctx context.Context, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&exercises).Error
}

func (s *GormStorage) CreateExerciseCompletion(ctx context.Context, completion *models.ExerciseCompletion) error {
	return s.db.WithContext(ctx).Create(completion).Error
}

func (s *GormStorage) GetUserRecentExerciseCompletions(ctx context.Context, userID string, limit int) ([]models.CompletionWithTitle, error) {
	rows := []models.CompletionWithTitle{}
	err := s.db.WithContext(ctx).
		Table("exercise_completions").
		Select("exercise_completions.*, exercises.title AS exercise_title").
		Joins("JOIN exercises ON exercises.id = exercise_completions.exercise_id").
		Where("exercise_completions.user_id = ?", userID).
		Order("exercise_completions.completed_at desc, exercise_completions.id desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (s *GormStorage) CreateMoodEntry(ctx context.Context, entry *models.MoodEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStorage) GetUserMoodEntries(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	entries := []models.MoodEntry{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc, id desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
