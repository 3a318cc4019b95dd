package models

import "time"

type ExerciseCategory string

const (
	CategoryBreathing   ExerciseCategory = "breathing"
	CategoryJournaling  ExerciseCategory = "journaling"
	CategoryMindfulness ExerciseCategory = "mindfulness"
	CategoryMovement    ExerciseCategory = "movement"
)

var ExerciseCategories = []ExerciseCategory{
	CategoryBreathing,
	CategoryJournaling,
	CategoryMindfulness,
	CategoryMovement,
}

func (c ExerciseCategory) Valid() bool {
	for _, category := range ExerciseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Exercise 练习目录, seeded at startup and never deleted
type Exercise struct {
	ID           uint             `gorm:"primaryKey" json:"id" yaml:"-"`
	Title        string           `gorm:"type:text;not null" json:"title" yaml:"title"`
	Description  string           `gorm:"type:text;not null" json:"description" yaml:"description"`
	Category     ExerciseCategory `gorm:"type:varchar(20);index;not null" json:"category" yaml:"category"`
	Duration     int              `json:"duration" yaml:"duration"` // minutes
	Instructions string           `gorm:"type:text;not null" json:"instructions" yaml:"instructions"`
	Icon         string           `gorm:"type:varchar(64);not null" json:"icon" yaml:"icon"`
	CreatedAt    time.Time        `json:"createdAt" yaml:"-"`
}

// ExerciseCompletion 练习完成记录
type ExerciseCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(255);index;not null" json:"userId"`
	ExerciseID  uint      `gorm:"index;not null" json:"exerciseId"`
	CompletedAt time.Time `gorm:"index;autoCreateTime" json:"completedAt"`
	Rating      *int      `json:"rating"` // 1-5 how helpful it was
}

// CompletionWithTitle carries the joined exercise title for AI context.
type CompletionWithTitle struct {
	ExerciseCompletion
	ExerciseTitle string `json:"exerciseTitle"`
}
