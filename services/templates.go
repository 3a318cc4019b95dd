package services

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"MindfulChatGo/models"
)

const (
	fallbackMessage = "I'm here to listen and support you. Sometimes I might have technical difficulties, but I care about your wellbeing. How are you feeling right now? 💙"
	emptyMessage    = "I'm here to listen and support you. How can I help you today? 💙"
)

type responseTemplate struct {
	triggers           []string
	responses          []string
	stressIndicators   []string
	suggestedExercises []string
}

// 模板按顺序匹配，先命中者优先
var responseTemplates = []responseTemplate{
	{
		triggers: []string{"anxious", "anxiety", "worried", "stress"},
		responses: []string{
			"I hear that you're feeling anxious, and that's completely valid. Anxiety can feel overwhelming, but you're not alone in this. 💙\n\nWould you like to try a quick breathing exercise? Sometimes focusing on our breath can help ground us in the present moment. What's been on your mind that's causing these anxious feelings?",
			"Thank you for sharing that you're feeling anxious. It takes courage to acknowledge these feelings. 🌱\n\nAnxiety often tries to convince us that we're in danger when we're actually safe. Have you noticed any specific thoughts or situations that tend to trigger your anxiety? Understanding our patterns can be really helpful.",
		},
		stressIndicators:   []string{"anxiety", "worried", "stress"},
		suggestedExercises: []string{"breathing", "mindfulness"},
	},
	{
		triggers: []string{"sad", "down", "depressed", "low"},
		responses: []string{
			"I'm sorry you're feeling down right now. Those heavy feelings are real and valid, and I want you to know that it's okay to not be okay sometimes. 💙\n\nEven in difficult moments, you've shown strength by reaching out and sharing. What's one small thing that brought you even a tiny bit of comfort today?",
			"Thank you for trusting me with how you're feeling. When we're down, it can feel like the world loses its color, but please know that these feelings, while painful, are temporary. 🌱\n\nWould it help to talk about what's been weighing on your heart lately?",
		},
		stressIndicators:   []string{"sadness", "low mood"},
		suggestedExercises: []string{"journaling", "mindfulness"},
	},
	{
		triggers: []string{"overwhelmed", "too much", "can't handle", "burnout"},
		responses: []string{
			"It sounds like you're carrying a really heavy load right now, and feeling overwhelmed is such a natural response to that. You're doing more than you realize. 💙\n\nWhen everything feels like too much, sometimes we need to pause and breathe. What's the one thing that feels most urgent to you right now? We can break things down together.",
			"Feeling overwhelmed is your mind's way of saying 'this is a lot to handle.' You're not failing - you're human, and humans have limits. 🌱\n\nLet's take a step back together. What would it feel like to give yourself permission to tackle just one small thing at a time?",
		},
		stressIndicators:   []string{"overwhelmed", "burnout"},
		suggestedExercises: []string{"breathing", "movement"},
	},
	{
		triggers: []string{"sleep", "tired", "exhausted", "insomnia"},
		responses: []string{
			"Sleep struggles can be so draining, both physically and emotionally. When our rest is disrupted, everything else feels harder too. 💙\n\nHave you noticed any patterns with your sleep? Sometimes our minds are too active at bedtime, or stress from the day follows us to bed. What does your evening routine look like?",
			"I hear you're having trouble with sleep. That's incredibly frustrating and can make everything feel more difficult. 🌱\n\nGood sleep is so foundational to our wellbeing. Would you like to explore some gentle relaxation techniques that might help your mind and body prepare for rest?",
		},
		stressIndicators:   []string{"sleep issues", "fatigue"},
		suggestedExercises: []string{"mindfulness", "breathing"},
	},
}

var (
	positiveKeywords = []string{"good", "great", "happy"}
	crisisPhrases    = []string{"suicide", "kill myself", "end it all", "want to die", "hurt myself"}
)

const (
	positiveMessage = "I'm so glad to hear you're feeling good! It's wonderful when we can recognize and appreciate the positive moments in our lives. 🌟\n\nWhat's contributing to these good feelings? Sometimes reflecting on the positive can help us understand what brings us joy and peace."
	defaultMessage  = "Thank you for sharing with me. I'm here to listen and support you through whatever you're experiencing. 💙\n\nEvery feeling you have is valid, and you don't have to face anything alone. What would be most helpful for you right now - would you like to talk more about what's on your mind, or explore some coping strategies together?"
)

// DetectCrisis reports whether the message contains any self-harm phrase.
func DetectCrisis(message string) bool {
	return containsAny(strings.ToLower(message), crisisPhrases)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func matchTemplate(message string) (*responseTemplate, string) {
	lower := strings.ToLower(message)
	for i := range responseTemplates {
		if containsAny(lower, responseTemplates[i].triggers) {
			return &responseTemplates[i], lower
		}
	}
	return nil, lower
}

// TemplateResponder answers from the static keyword tables without any network call.
type TemplateResponder struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewTemplateResponder() *TemplateResponder {
	return NewTemplateResponderWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewTemplateResponderWithSource pins the variant choice, mainly for tests.
func NewTemplateResponderWithSource(src rand.Source) *TemplateResponder {
	return &TemplateResponder{rnd: rand.New(src)}
}

func (t *TemplateResponder) pick(n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rnd.Intn(n)
}

func (t *TemplateResponder) GenerateResponse(_ context.Context, userMessage string, _ []models.HistoryTurn, _ *UserContext) ChatResponse {
	requiresImmediate := DetectCrisis(userMessage)

	tmpl, lower := matchTemplate(userMessage)
	if tmpl != nil {
		return ChatResponse{
			Message:            tmpl.responses[t.pick(len(tmpl.responses))],
			Sentiment:          models.SentimentNegative,
			StressIndicators:   append([]string(nil), tmpl.stressIndicators...),
			SuggestedExercises: append([]string(nil), tmpl.suggestedExercises...),
			RequiresImmediate:  requiresImmediate,
		}
	}

	if containsAny(lower, positiveKeywords) {
		return ChatResponse{
			Message:            positiveMessage,
			Sentiment:          models.SentimentPositive,
			StressIndicators:   []string{},
			SuggestedExercises: []string{"journaling"},
			RequiresImmediate:  requiresImmediate,
		}
	}

	return ChatResponse{
		Message:            defaultMessage,
		Sentiment:          models.SentimentNeutral,
		StressIndicators:   []string{},
		SuggestedExercises: []string{"breathing", "journaling"},
		RequiresImmediate:  requiresImmediate,
	}
}

// TemplateAnalyzer tags sentiment with the same keyword tables.
type TemplateAnalyzer struct{}

func (TemplateAnalyzer) AnalyzeSentiment(_ context.Context, message string) SentimentResult {
	tmpl, lower := matchTemplate(message)
	switch {
	case tmpl != nil:
		return SentimentResult{
			Sentiment:        models.SentimentNegative,
			Confidence:       0.7,
			StressIndicators: append([]string(nil), tmpl.stressIndicators...),
		}
	case DetectCrisis(message):
		return SentimentResult{Sentiment: models.SentimentNegative, Confidence: 0.7, StressIndicators: []string{}}
	case containsAny(lower, positiveKeywords):
		return SentimentResult{Sentiment: models.SentimentPositive, Confidence: 0.7, StressIndicators: []string{}}
	default:
		return defaultSentiment()
	}
}

func defaultSentiment() SentimentResult {
	return SentimentResult{Sentiment: models.SentimentNeutral, Confidence: 0.5, StressIndicators: []string{}}
}
