package services

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

type scriptedCall struct {
	messages []llms.MessageContent
	options  llms.CallOptions
}

// scriptedModel replays canned outputs in order; a nil-content step with err set fails that call.
type scriptedModel struct {
	mu      sync.Mutex
	outputs []string
	errs    []error
	block   bool
	calls   []scriptedCall
}

func (m *scriptedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	m.mu.Lock()
	i := len(m.calls)
	m.calls = append(m.calls, scriptedCall{messages: messages, options: opts})
	m.mu.Unlock()

	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i >= len(m.outputs) {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.outputs[i]}}}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *scriptedModel) recorded() []scriptedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]scriptedCall(nil), m.calls...)
}
