package models

import "time"

type Mood string

const (
	MoodGreat  Mood = "great"
	MoodGood   Mood = "good"
	MoodOkay   Mood = "okay"
	MoodTough  Mood = "tough"
	MoodCrisis Mood = "crisis"
)

const (
	MinScore     = 1
	MaxScore     = 10
	DefaultScore = 5
)

// MoodEntry 情绪记录, append-only
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(255);index;not null" json:"userId"`
	Mood      Mood      `gorm:"type:varchar(20);not null" json:"mood"`
	MoodScore int       `gorm:"not null;default:5" json:"moodScore"` // 1-10
	Energy    int       `gorm:"not null;default:5" json:"energy"`    // 1-10
	Anxiety   int       `gorm:"not null;default:5" json:"anxiety"`   // 1-10
	Notes     string    `gorm:"type:text" json:"notes"`
	Timestamp time.Time `gorm:"index;autoCreateTime" json:"timestamp"`
}

// ClampScore keeps a check-in score inside [1,10].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
