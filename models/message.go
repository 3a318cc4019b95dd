package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment maps anything outside the three labels to neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNegative:
		return Sentiment(s)
	default:
		return SentimentNeutral
	}
}

var ErrMessageImmutable = errors.New("messages are immutable once created")

// Message 消息. Sentiment and StressIndicators are nullable.
type Message struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	ConversationID   uint                        `gorm:"index;not null" json:"conversationId"`
	Content          string                      `gorm:"type:text;not null" json:"content"`
	Role             Role                        `gorm:"type:varchar(20);not null" json:"role"`
	Sentiment        *Sentiment                  `gorm:"type:varchar(20)" json:"sentiment"`
	StressIndicators datatypes.JSONSlice[string] `json:"stressIndicators"`
	Timestamp        time.Time                   `gorm:"index;autoCreateTime" json:"timestamp"`
}

// BeforeUpdate rejects every update; messages are append-only.
func (m *Message) BeforeUpdate(tx *gorm.DB) error {
	return ErrMessageImmutable
}

// HistoryTurn is the role/content pair handed to response generators.
type HistoryTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func (m *Message) Turn() HistoryTurn {
	return HistoryTurn{Role: m.Role, Content: m.Content}
}
