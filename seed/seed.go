package seed

import (
	"context"
	_ "embed"
	"fmt"

	"MindfulChatGo/config"
	"MindfulChatGo/models"
	"MindfulChatGo/storage"

	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var exercisesYAML []byte

// LoadExercises parses the embedded default catalog.
func LoadExercises() ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := yaml.Unmarshal(exercisesYAML, &exercises); err != nil {
		return nil, fmt.Errorf("parse exercise catalog: %w", err)
	}
	for _, e := range exercises {
		if !e.Category.Valid() {
			return nil, fmt.Errorf("exercise %q has unknown category %q", e.Title, e.Category)
		}
	}
	return exercises, nil
}

// SeedExercises inserts the default catalog when the table is empty.
// It reports how many rows were inserted.
func SeedExercises(ctx context.Context, store storage.Storage) (int, error) {
	count, err := store.CountExercises(ctx)
	if err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		config.Logger.Debugw("练习目录已存在，跳过初始化", "count", count)
		return 0, nil
	}

	exercises, err := LoadExercises()
	if err != nil {
		return 0, err
	}
	if err := store.CreateExercises(ctx, exercises); err != nil {
		return 0, fmt.Errorf("insert exercises: %w", err)
	}
	config.Logger.Infow("练习目录初始化完成", "count", len(exercises))
	return len(exercises), nil
}
