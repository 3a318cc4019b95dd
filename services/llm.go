package services

import (
	"context"
	"fmt"

	"MindfulChatGo/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewLLMModel builds the model named by LLM_PROVIDER. A nil model means template mode.
func NewLLMModel(ctx context.Context, conf config.Config) (llms.Model, error) {
	switch conf.LLMProvider {
	case "openai":
		options := []openai.Option{
			openai.WithToken(conf.OpenAIAPIKey),
			openai.WithModel(conf.OpenAIModel),
		}
		if conf.OpenAIBaseURL != "" {
			options = append(options, openai.WithBaseURL(conf.OpenAIBaseURL))
		}
		model, err := openai.New(options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return model, nil
	case "gemini":
		model, err := NewGeminiModel(ctx, conf.GeminiAPIKey, conf.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return model, nil
	case "template", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", conf.LLMProvider)
	}
}

// NewGenerators wires the responder and analyzer for the given model.
func NewGenerators(model llms.Model, conf config.Config) (ResponseGenerator, SentimentAnalyzer) {
	template := NewTemplateResponder()
	if model == nil {
		return template, TemplateAnalyzer{}
	}
	return NewDelegatedResponder(model, conf.LLMTimeout(), template),
		NewDelegatedAnalyzer(model, conf.LLMTimeout(), TemplateAnalyzer{})
}
