package services

import (
	"context"

	"MindfulChatGo/models"
	"MindfulChatGo/storage"
)

const (
	DefaultMoodLimit = 10
	maxMoodLimit     = 100
)

type MoodService struct {
	store storage.Storage
}

func NewMoodService(store storage.Storage) *MoodService {
	return &MoodService{store: store}
}

func (s *MoodService) CreateMood(ctx context.Context, userID string, req models.CreateMoodRequest) (*models.MoodEntry, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	entry := req.ToEntry(userID)
	if err := s.store.CreateMoodEntry(ctx, &entry); err != nil {
		return nil, persistErr("save mood entry", err)
	}
	return &entry, nil
}

// ListMoods returns the newest entries first; limit is capped at 100.
func (s *MoodService) ListMoods(ctx context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	if limit < 1 {
		return nil, &ValidationError{Field: "limit", Message: "must be a positive integer"}
	}
	if limit > maxMoodLimit {
		limit = maxMoodLimit
	}
	entries, err := s.store.GetUserMoodEntries(ctx, userID, limit)
	if err != nil {
		return nil, persistErr("list mood entries", err)
	}
	return entries, nil
}
