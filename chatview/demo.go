package chatview

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"MindfulChatGo/models"
	"MindfulChatGo/services"
)

const (
	minDemoDelay = 1500 * time.Millisecond
	demoJitter   = 1000 * time.Millisecond
)

// Greeting opens a demo conversation.
var Greeting = models.Message{
	ID:             1,
	ConversationID: 1,
	Content:        "Hello there! 👋 I'm here to listen and support you. How are you feeling today? Feel free to share what's on your mind - there's no judgment here. 💙",
	Role:           models.RoleAssistant,
}

// DemoTransport answers locally with the template responder after a simulated network delay.
type DemoTransport struct {
	responder *services.TemplateResponder
	sleep     func(ctx context.Context, d time.Duration) error

	mu     sync.Mutex
	rnd    *rand.Rand
	nextID uint
}

func NewDemoTransport() *DemoTransport {
	return &DemoTransport{
		responder: services.NewTemplateResponder(),
		sleep:     sleepContext,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID:    Greeting.ID + 1,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// delay is uniform in [1.5s, 2.5s).
func (d *DemoTransport) delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return minDemoDelay + time.Duration(d.rnd.Int63n(int64(demoJitter)))
}

func (d *DemoTransport) ids() (uint, uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	user, assistant := d.nextID, d.nextID+1
	d.nextID += 2
	return user, assistant
}

func (d *DemoTransport) SendMessage(ctx context.Context, conversationID uint, message string) (*models.ChatTurnResponse, error) {
	if err := d.sleep(ctx, d.delay()); err != nil {
		return nil, err
	}

	resp := d.responder.GenerateResponse(ctx, message, nil, nil)
	userID, assistantID := d.ids()
	now := time.Now()
	sentiment := resp.Sentiment

	return &models.ChatTurnResponse{
		UserMessage: models.Message{
			ID:             userID,
			ConversationID: conversationID,
			Content:        message,
			Role:           models.RoleUser,
			Timestamp:      now,
		},
		AssistantMessage: models.Message{
			ID:               assistantID,
			ConversationID:   conversationID,
			Content:          resp.Message,
			Role:             models.RoleAssistant,
			Sentiment:        &sentiment,
			StressIndicators: resp.StressIndicators,
			Timestamp:        now,
		},
		Analysis: resp.Analysis(),
	}, nil
}
