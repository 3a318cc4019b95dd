package services

import (
	"context"
	"fmt"
	"time"

	"MindfulChatGo/config"
	"MindfulChatGo/utils"

	"github.com/tmc/langchaingo/llms"
)

// DelegatedAnalyzer classifies a single message with one JSON-mode call.
type DelegatedAnalyzer struct {
	model    llms.Model
	timeout  time.Duration
	fallback SentimentAnalyzer
}

func NewDelegatedAnalyzer(model llms.Model, timeout time.Duration, fallback SentimentAnalyzer) *DelegatedAnalyzer {
	return &DelegatedAnalyzer{model: model, timeout: timeout, fallback: fallback}
}

func (a *DelegatedAnalyzer) AnalyzeSentiment(ctx context.Context, message string) SentimentResult {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(sentimentPrompt, message)),
	}
	raw, err := complete(ctx, a.model, a.timeout, messages, llms.WithTemperature(0.1), llms.WithJSONMode())
	if err != nil {
		config.Logger.Errorw("情绪分析失败，使用模板分析", "error", err)
		utils.UpstreamFailures.WithLabelValues("sentiment").Inc()
		return a.fallback.AnalyzeSentiment(ctx, message)
	}

	result, err := parseSentiment(raw)
	if err != nil {
		config.Logger.Warnw("情绪分析结果解析失败", "error", err, "raw", raw)
		utils.UpstreamFailures.WithLabelValues("sentiment_parse").Inc()
		return defaultSentiment()
	}
	return result
}
