package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MindfulChatGo/cache"
	"MindfulChatGo/config"
	"MindfulChatGo/models"
	"MindfulChatGo/seed"
	"MindfulChatGo/storage"
)

const allCategoriesKey = "all"

type ExerciseService struct {
	store storage.Storage
	cache cache.Cache // nil disables caching
	ttl   time.Duration
}

func NewExerciseService(store storage.Storage, c cache.Cache, ttl time.Duration) *ExerciseService {
	return &ExerciseService{store: store, cache: c, ttl: ttl}
}

func catalogKey(category models.ExerciseCategory) string {
	if category == "" {
		return fmt.Sprintf("exercises:%s", allCategoriesKey)
	}
	return fmt.Sprintf("exercises:%s", category)
}

// ListExercises returns the catalog, optionally filtered by category.
func (s *ExerciseService) ListExercises(ctx context.Context, category string) ([]models.Exercise, error) {
	cat := models.ExerciseCategory(category)
	if cat != "" && !cat.Valid() {
		return nil, &ValidationError{Field: "category", Message: "must be one of: breathing journaling mindfulness movement"}
	}

	key := catalogKey(cat)
	if s.cache != nil {
		var cached []models.Exercise
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			config.Logger.Warnw("读取练习缓存失败", "error", err, "key", key)
		}
	}

	exercises, err := s.store.GetExercises(ctx, cat)
	if err != nil {
		return nil, persistErr("list exercises", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, exercises, s.ttl); err != nil {
			config.Logger.Warnw("写入练习缓存失败", "error", err, "key", key)
		}
	}
	return exercises, nil
}

func (s *ExerciseService) CompleteExercise(ctx context.Context, userID string, req models.CompleteExerciseRequest) (*models.ExerciseCompletion, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	if _, err := s.store.GetExercise(ctx, req.ExerciseID); err != nil {
		return nil, persistErr("get exercise", err)
	}

	completion := &models.ExerciseCompletion{
		UserID:     userID,
		ExerciseID: req.ExerciseID,
		Rating:     req.Rating,
	}
	if err := s.store.CreateExerciseCompletion(ctx, completion); err != nil {
		return nil, persistErr("record exercise completion", err)
	}
	return completion, nil
}

// SeedCatalog loads the default exercises into an empty table and drops cached listings.
func (s *ExerciseService) SeedCatalog(ctx context.Context) (int, error) {
	n, err := seed.SeedExercises(ctx, s.store)
	if err != nil {
		return 0, &PersistenceError{Op: "seed exercises", Err: err}
	}
	if n > 0 && s.cache != nil {
		keys := []string{catalogKey("")}
		for _, category := range models.ExerciseCategories {
			keys = append(keys, catalogKey(category))
		}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			config.Logger.Warnw("清理练习缓存失败", "error", err)
		}
	}
	return n, nil
}
