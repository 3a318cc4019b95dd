package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MindfulChatGo/config"
	"MindfulChatGo/models"
	"MindfulChatGo/utils"

	"github.com/tmc/langchaingo/llms"
)

var errEmptyCompletion = errors.New("model returned no choices")

// complete runs one bounded call against the model and returns the first choice.
func complete(ctx context.Context, model llms.Model, timeout time.Duration, messages []llms.MessageContent, options ...llms.CallOption) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := model.GenerateContent(callCtx, messages, options...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

// DelegatedResponder drafts a reply with the model, then asks it to classify the turn.
type DelegatedResponder struct {
	model    llms.Model
	timeout  time.Duration
	fallback ResponseGenerator
}

func NewDelegatedResponder(model llms.Model, timeout time.Duration, fallback ResponseGenerator) *DelegatedResponder {
	return &DelegatedResponder{
		model:    model,
		timeout:  timeout,
		fallback: fallback,
	}
}

func (d *DelegatedResponder) GenerateResponse(ctx context.Context, userMessage string, history []models.HistoryTurn, userCtx *UserContext) ChatResponse {
	reply, err := d.draftReply(ctx, userMessage, history, userCtx)
	if err != nil {
		config.Logger.Errorw("生成回复失败，使用模板回复", "error", err)
		utils.UpstreamFailures.WithLabelValues("reply").Inc()
		return d.fallback.GenerateResponse(ctx, userMessage, history, userCtx)
	}

	raw, err := d.classify(ctx, userMessage, reply)
	if err != nil {
		config.Logger.Errorw("消息分类失败，使用模板分类", "error", err)
		utils.UpstreamFailures.WithLabelValues("classify").Inc()
		resp := d.fallback.GenerateResponse(ctx, userMessage, history, userCtx)
		if strings.TrimSpace(reply) != "" {
			resp.Message = strings.TrimSpace(reply)
		}
		return resp
	}

	resp, err := parseChatResponse(raw, reply)
	if err != nil {
		config.Logger.Warnw("分类结果解析失败", "error", err, "raw", raw)
		utils.UpstreamFailures.WithLabelValues("classify_parse").Inc()
		resp = safeResponse()
	}
	resp.RequiresImmediate = resp.RequiresImmediate || DetectCrisis(userMessage)
	return resp
}

func (d *DelegatedResponder) draftReply(ctx context.Context, userMessage string, history []models.HistoryTurn, userCtx *UserContext) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildSystemPrompt(userCtx)),
	}
	for _, turn := range lastTurns(history, historyWindow) {
		role := llms.ChatMessageTypeHuman
		if turn.Role == models.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, turn.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userMessage))

	reply, err := complete(ctx, d.model, d.timeout, messages, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("draft reply: %w", err)
	}
	return reply, nil
}

func (d *DelegatedResponder) classify(ctx context.Context, userMessage, reply string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(classificationPrompt, userMessage, reply)),
	}
	raw, err := complete(ctx, d.model, d.timeout, messages, llms.WithTemperature(0.3), llms.WithJSONMode())
	if err != nil {
		return "", fmt.Errorf("classify turn: %w", err)
	}
	return raw, nil
}
