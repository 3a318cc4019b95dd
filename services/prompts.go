package services

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are MindfulChat, an empathetic AI companion focused on mental health support. Your responses should be:

1. Warm, compassionate, and non-judgmental
2. Supportive without being overly clinical
3. Focused on validation and gentle guidance
4. Encouraging self-care and professional help when needed

Guidelines:
- Always validate the user's feelings
- Use gentle, caring language with occasional emojis (💙, 🌱, ✨)
- Offer practical coping strategies
- Suggest breathing exercises, journaling, or mindfulness when appropriate
- If you detect crisis language, gently encourage professional help
- Keep responses conversational but supportive
- Ask follow-up questions to show engagement

Respond with empathy and care while providing gentle guidance.`

const classificationPrompt = `Analyze this user message for mental health indicators and return JSON with this exact structure:

{
  "message": "Your empathetic response here",
  "sentiment": "positive|neutral|negative",
  "stressIndicators": ["array", "of", "detected", "stress", "keywords"],
  "suggestedExercises": ["breathing", "journaling", "mindfulness", "movement"],
  "requiresImmediate": false
}

User message: %q

Drafted reply: %q

Use the drafted reply as "message", refining it only if it is not warm and empathetic. Set "requiresImmediate" to true only when the user may need urgent professional help. Return JSON only.`

const sentimentPrompt = `Analyze the sentiment and stress indicators in this message. Return JSON:

{
  "sentiment": "positive|neutral|negative",
  "confidence": 0.0-1.0,
  "stressIndicators": ["array", "of", "stress", "related", "keywords", "found"]
}

Look for indicators like: anxiety, stress, overwhelmed, panic, depressed, tired, can't sleep, worried, scared, hopeless, angry, frustrated, etc.

Message: %q`

// buildSystemPrompt appends the user's recent activity to the base instruction.
func buildSystemPrompt(userCtx *UserContext) string {
	if userCtx.Empty() {
		return systemPrompt
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nContext about this user (use it gently, never recite it back):")

	if n := len(userCtx.RecentMoods); n > 0 {
		var mood, energy, anxiety int
		for _, m := range userCtx.RecentMoods {
			mood += m.MoodScore
			energy += m.Energy
			anxiety += m.Anxiety
		}
		count := float64(n)
		fmt.Fprintf(&b, "\n- Recent average mood: %.1f/10, energy: %.1f/10, anxiety: %.1f/10 (last %d check-ins)",
			float64(mood)/count, float64(energy)/count, float64(anxiety)/count, n)
	}
	if len(userCtx.RecentExercises) > 0 {
		fmt.Fprintf(&b, "\n- Recently completed exercises: %s", strings.Join(userCtx.RecentExercises, ", "))
	}
	if len(userCtx.Themes) > 0 {
		fmt.Fprintf(&b, "\n- Recurring themes in past conversations: %s", strings.Join(userCtx.Themes, ", "))
	}
	return b.String()
}
