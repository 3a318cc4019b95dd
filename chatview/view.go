package chatview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"MindfulChatGo/models"
)

type State int

const (
	Idle State = iota
	Composing
	Sending
	Awaiting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Sending:
		return "sending"
	case Awaiting:
		return "awaiting"
	default:
		return "unknown"
	}
}

var (
	ErrBusy  = errors.New("a reply is still pending")
	ErrEmpty = errors.New("message is empty")
)

const (
	stressTitle = "I noticed some stress indicators"
	stressBody  = "Would you like me to suggest some coping strategies?"
)

// Notification is a non-blocking toast.
type Notification struct {
	Title string
	Body  string
}

// Transport delivers one chat turn.
type Transport interface {
	SendMessage(ctx context.Context, conversationID uint, message string) (*models.ChatTurnResponse, error)
}

// View holds the client side of one conversation. The message list is append-only.
type View struct {
	mu             sync.Mutex
	transport      Transport
	conversationID uint

	state         State
	input         string
	messages      []models.Message
	crisisOpen    bool
	notifications []Notification
}

func New(transport Transport, conversationID uint, history []models.Message) *View {
	return &View{
		transport:      transport,
		conversationID: conversationID,
		messages:       append([]models.Message(nil), history...),
	}
}

// SetInput updates the draft. Typing never unlocks a pending send.
func (v *View) SetInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = text
	if v.pending() {
		return
	}
	if strings.TrimSpace(text) == "" {
		v.state = Idle
	} else {
		v.state = Composing
	}
}

func (v *View) pending() bool {
	return v.state == Sending || v.state == Awaiting
}

func (v *View) CanSend() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.pending() && strings.TrimSpace(v.input) != ""
}

// Send appends the draft optimistically and blocks until the reply arrives.
func (v *View) Send(ctx context.Context) error {
	v.mu.Lock()
	if v.pending() {
		v.mu.Unlock()
		return ErrBusy
	}
	content := strings.TrimSpace(v.input)
	if content == "" {
		v.mu.Unlock()
		return ErrEmpty
	}

	v.state = Sending
	optimistic := len(v.messages)
	v.messages = append(v.messages, models.Message{
		ConversationID: v.conversationID,
		Content:        content,
		Role:           models.RoleUser,
		Timestamp:      time.Now(),
	})
	v.input = ""
	v.state = Awaiting
	v.mu.Unlock()

	resp, err := v.transport.SendMessage(ctx, v.conversationID, content)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = Idle
	if strings.TrimSpace(v.input) != "" {
		v.state = Composing
	}
	if err != nil {
		v.notifications = append(v.notifications, Notification{Title: "Failed to send message", Body: err.Error()})
		return err
	}

	v.messages[optimistic] = resp.UserMessage
	v.messages = append(v.messages, resp.AssistantMessage)
	if len(resp.Analysis.StressIndicators) > 0 {
		v.notifications = append(v.notifications, Notification{Title: stressTitle, Body: stressBody})
	}
	if resp.Analysis.RequiresImmediate {
		v.crisisOpen = true
	}
	return nil
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

func (v *View) Messages() []models.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Message(nil), v.messages...)
}

func (v *View) CrisisOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.crisisOpen
}

func (v *View) CloseCrisis() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.crisisOpen = false
}

// DrainNotifications returns and clears queued notifications.
func (v *View) DrainNotifications() []Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.notifications
	v.notifications = nil
	return out
}

// QuickReplies are one-tap openers offered under the input.
var QuickReplies = []string{
	"I'm feeling anxious",
	"I need motivation",
	"Help me relax",
	"I can't sleep",
}
