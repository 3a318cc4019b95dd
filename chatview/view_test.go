package chatview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"MindfulChatGo/models"
)

type stubTransport struct {
	mu      sync.Mutex
	calls   []string
	resp    *models.ChatTurnResponse
	err     error
	release chan struct{}
	entered chan struct{}
}

func (s *stubTransport) SendMessage(ctx context.Context, conversationID uint, message string) (*models.ChatTurnResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, message)
	s.mu.Unlock()
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func turn(user, assistant string, analysis models.ChatAnalysis) *models.ChatTurnResponse {
	return &models.ChatTurnResponse{
		UserMessage:      models.Message{ID: 10, ConversationID: 1, Content: user, Role: models.RoleUser},
		AssistantMessage: models.Message{ID: 11, ConversationID: 1, Content: assistant, Role: models.RoleAssistant},
		Analysis:         analysis,
	}
}

func TestSetInputTransitions(t *testing.T) {
	v := New(&stubTransport{}, 1, nil)
	if v.State() != Idle {
		t.Fatalf("initial state: got %s", v.State())
	}
	v.SetInput("hi")
	if v.State() != Composing || !v.CanSend() {
		t.Errorf("after typing: state %s, canSend %v", v.State(), v.CanSend())
	}
	v.SetInput("   ")
	if v.State() != Idle || v.CanSend() {
		t.Errorf("whitespace input: state %s, canSend %v", v.State(), v.CanSend())
	}
}

func TestSendEmptyIsRejected(t *testing.T) {
	st := &stubTransport{}
	v := New(st, 1, nil)
	v.SetInput("  \n ")
	if err := v.Send(context.Background()); !errors.Is(err, ErrEmpty) {
		t.Fatalf("got %v, want ErrEmpty", err)
	}
	if len(st.calls) != 0 || len(v.Messages()) != 0 {
		t.Error("empty send must not reach the transport or the list")
	}
}

func TestSendReplacesOptimisticMessage(t *testing.T) {
	st := &stubTransport{resp: turn("hello", "hi there", models.ChatAnalysis{Sentiment: models.SentimentNeutral, StressIndicators: []string{}})}
	v := New(st, 1, []models.Message{Greeting})
	v.SetInput("  hello  ")

	if err := v.Send(context.Background()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if st.calls[0] != "hello" {
		t.Errorf("transport got %q, want trimmed content", st.calls[0])
	}
	msgs := v.Messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[1].ID != 10 || msgs[2].Content != "hi there" {
		t.Errorf("server messages not applied: %+v", msgs[1:])
	}
	if v.Input() != "" || v.State() != Idle {
		t.Errorf("after send: input %q state %s", v.Input(), v.State())
	}
	if n := v.DrainNotifications(); len(n) != 0 {
		t.Errorf("unexpected notifications: %v", n)
	}
	if v.CrisisOpen() {
		t.Error("crisis should stay closed")
	}
}

func TestSendWhilePendingIsBusy(t *testing.T) {
	st := &stubTransport{
		resp:    turn("first", "ok", models.ChatAnalysis{}),
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	v := New(st, 1, nil)
	v.SetInput("first")

	done := make(chan error, 1)
	go func() { done <- v.Send(context.Background()) }()
	<-st.entered

	if v.State() != Awaiting {
		t.Errorf("state while pending: got %s, want awaiting", v.State())
	}
	if len(v.Messages()) != 1 {
		t.Error("user message should be appended before the reply")
	}
	v.SetInput("second")
	if v.CanSend() {
		t.Error("CanSend must be false while awaiting")
	}
	if err := v.Send(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("got %v, want ErrBusy", err)
	}

	close(st.release)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}
	if v.State() != Composing {
		t.Errorf("draft typed while pending should leave composing, got %s", v.State())
	}
	if len(st.calls) != 1 {
		t.Errorf("transport called %d times, want 1", len(st.calls))
	}
}

func TestStressNotificationAndCrisis(t *testing.T) {
	st := &stubTransport{resp: turn("I want to end it all", "please reach out", models.ChatAnalysis{
		Sentiment:         models.SentimentNegative,
		StressIndicators:  []string{"hopelessness"},
		RequiresImmediate: true,
	})}
	v := New(st, 1, nil)
	v.SetInput("I want to end it all")
	if err := v.Send(context.Background()); err != nil {
		t.Fatal(err)
	}

	notes := v.DrainNotifications()
	if len(notes) != 1 || notes[0].Title != stressTitle {
		t.Errorf("notifications: %+v", notes)
	}
	if len(v.DrainNotifications()) != 0 {
		t.Error("drain should clear the queue")
	}
	if !v.CrisisOpen() {
		t.Fatal("crisis dialog should be open")
	}
	v.CloseCrisis()
	if v.CrisisOpen() {
		t.Error("CloseCrisis did not close")
	}
}

func TestSendFailureKeepsUserMessage(t *testing.T) {
	st := &stubTransport{err: errors.New("connection refused")}
	v := New(st, 1, nil)
	v.SetInput("hello")
	if err := v.Send(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if msgs := v.Messages(); len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Errorf("messages after failure: %+v", msgs)
	}
	if v.State() != Idle {
		t.Errorf("state: got %s, want idle", v.State())
	}
	notes := v.DrainNotifications()
	if len(notes) != 1 || !strings.Contains(notes[0].Body, "connection refused") {
		t.Errorf("notifications: %+v", notes)
	}
}

func TestDemoTransportDelayAndReply(t *testing.T) {
	d := NewDemoTransport()
	var slept time.Duration
	d.sleep = func(_ context.Context, dur time.Duration) error {
		slept = dur
		return nil
	}

	resp, err := d.SendMessage(context.Background(), 1, "I'm feeling anxious about work")
	if err != nil {
		t.Fatal(err)
	}
	if slept < minDemoDelay || slept >= minDemoDelay+demoJitter {
		t.Errorf("delay %v outside [1.5s, 2.5s)", slept)
	}
	if resp.AssistantMessage.Role != models.RoleAssistant || resp.AssistantMessage.Content == "" {
		t.Errorf("assistant message: %+v", resp.AssistantMessage)
	}
	if len(resp.Analysis.StressIndicators) == 0 {
		t.Error("anxious message should carry stress indicators")
	}
	if resp.UserMessage.ID == resp.AssistantMessage.ID {
		t.Error("ids should be distinct")
	}
}

func TestDemoTransportRaisesCrisis(t *testing.T) {
	d := NewDemoTransport()
	d.sleep = func(context.Context, time.Duration) error { return nil }
	v := New(d, 1, nil)
	v.SetInput("I feel great, I want to die")
	if err := v.Send(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !v.CrisisOpen() {
		t.Error("crisis dialog should open for a crisis phrase")
	}
}

func TestDemoTransportHonoursCancel(t *testing.T) {
	d := NewDemoTransport()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.SendMessage(ctx, 1, "hi"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestRenderCrisisMentionsHotlines(t *testing.T) {
	out := RenderCrisis(80)
	for _, want := range []string{"988", "741741"} {
		if !strings.Contains(out, want) {
			t.Errorf("crisis box missing %q", want)
		}
	}
}
