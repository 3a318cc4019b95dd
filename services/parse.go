package services

import (
	"encoding/json"
	"errors"
	"strings"

	"MindfulChatGo/models"
)

var errNoJSONObject = errors.New("no JSON object in model output")

// extractJSON returns the text between the first '{' and the last '}'.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", errNoJSONObject
	}
	return raw[start : end+1], nil
}

func decodeObject(raw string) (map[string]json.RawMessage, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Each field decodes on its own; a bad field falls back to its default.

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	var s string
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	return "", false
}

func boolField(fields map[string]json.RawMessage, key string) bool {
	var b bool
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &b) == nil {
		return b
	}
	return false
}

func floatField(fields map[string]json.RawMessage, key string, def float64) float64 {
	var f float64
	if raw, ok := fields[key]; ok && json.Unmarshal(raw, &f) == nil {
		return f
	}
	return def
}

// stringsField keeps the string elements of an array, trimmed and de-duplicated in order.
func stringsField(fields map[string]json.RawMessage, key string) []string {
	out := []string{}
	var items []interface{}
	raw, ok := fields[key]
	if !ok || json.Unmarshal(raw, &items) != nil {
		return out
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func exerciseCategories(items []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, item := range items {
		category := strings.ToLower(item)
		if !models.ExerciseCategory(category).Valid() || seen[category] {
			continue
		}
		seen[category] = true
		out = append(out, category)
	}
	return out
}

var errEmptyClassification = errors.New("classifier returned an empty object")

// parseChatResponse decodes the classifier output. draft is the reply from the first call.
func parseChatResponse(raw, draft string) (ChatResponse, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return ChatResponse{}, err
	}
	if len(fields) == 0 {
		return ChatResponse{}, errEmptyClassification
	}

	message, ok := stringField(fields, "message")
	if !ok {
		message = strings.TrimSpace(draft)
	}
	if message == "" {
		message = emptyMessage
	}

	sentiment, _ := stringField(fields, "sentiment")
	resp := ChatResponse{
		Message:            message,
		Sentiment:          models.ParseSentiment(strings.ToLower(sentiment)),
		StressIndicators:   stringsField(fields, "stressIndicators"),
		SuggestedExercises: exerciseCategories(stringsField(fields, "suggestedExercises")),
		RequiresImmediate:  boolField(fields, "requiresImmediate"),
	}
	if resp.Sentiment == models.SentimentPositive {
		resp.StressIndicators = []string{}
	}
	return resp, nil
}

func parseSentiment(raw string) (SentimentResult, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return SentimentResult{}, err
	}
	sentiment, _ := stringField(fields, "sentiment")
	result := SentimentResult{
		Sentiment:        models.ParseSentiment(strings.ToLower(sentiment)),
		Confidence:       clampConfidence(floatField(fields, "confidence", 0.5)),
		StressIndicators: stringsField(fields, "stressIndicators"),
	}
	if result.Sentiment == models.SentimentPositive {
		result.StressIndicators = []string{}
	}
	return result, nil
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// safeResponse is returned when the classifier output cannot be decoded at all.
func safeResponse() ChatResponse {
	return ChatResponse{
		Message:            fallbackMessage,
		Sentiment:          models.SentimentNeutral,
		StressIndicators:   []string{},
		SuggestedExercises: []string{},
		RequiresImmediate:  false,
	}
}
