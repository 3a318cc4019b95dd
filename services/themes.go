package services

import (
	"strings"

	"MindfulChatGo/models"
)

const maxThemes = 5

var themeKeywords = []string{"anxiety", "stress", "work", "family", "sleep", "depression", "overwhelmed", "tired", "worried"}

// ExtractThemes collects stress indicators and keyword hits from recent user messages,
// in first-seen order, capped at five.
func ExtractThemes(messages []models.Message) []string {
	themes := []string{}
	seen := map[string]bool{}
	add := func(theme string) {
		if theme == "" || seen[theme] {
			return
		}
		seen[theme] = true
		themes = append(themes, theme)
	}

	for _, msg := range messages {
		for _, indicator := range msg.StressIndicators {
			add(indicator)
		}
		content := strings.ToLower(msg.Content)
		for _, keyword := range themeKeywords {
			if strings.Contains(content, keyword) {
				add(keyword)
			}
		}
	}

	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}
