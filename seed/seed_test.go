package seed

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"MindfulChatGo/config"
	"MindfulChatGo/models"
	"MindfulChatGo/storage"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func TestLoadExercises(t *testing.T) {
	exercises, err := LoadExercises()
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 4 {
		t.Fatalf("got %d exercises, want 4", len(exercises))
	}

	first := exercises[0]
	if first.Title != "4-7-8 Breathing" || first.Category != models.CategoryBreathing || first.Duration != 3 {
		t.Errorf("unexpected first exercise %+v", first)
	}
	if !strings.HasPrefix(first.Instructions, "1. Exhale completely") || strings.HasSuffix(first.Instructions, "\n") {
		t.Errorf("instructions not preserved: %q", first.Instructions)
	}
}

func TestSeedExercisesOnlyWhenEmpty(t *testing.T) {
	db, err := config.OpenDB(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")), logger.Silent)
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewGormStorage(db)
	ctx := context.Background()

	n, err := SeedExercises(ctx, store)
	if err != nil || n != 4 {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	n, err = SeedExercises(ctx, store)
	if err != nil || n != 0 {
		t.Fatalf("second seed should be a no-op: n=%d err=%v", n, err)
	}

	count, _ := store.CountExercises(ctx)
	if count != 4 {
		t.Errorf("count: got %d, want 4", count)
	}
}
