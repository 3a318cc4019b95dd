package models

import "time"

const maxTitleRunes = 40

// Conversation 会话
type Conversation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(255);index;not null" json:"userId"`
	Title     string    `gorm:"type:text" json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

// TitleFromMessage truncates the first user message into a conversation title.
func TitleFromMessage(content string) string {
	runes := []rune(content)
	if len(runes) > maxTitleRunes {
		return string(runes[:maxTitleRunes])
	}
	return content
}
