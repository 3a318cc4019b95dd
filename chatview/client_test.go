package chatview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"MindfulChatGo/models"
)

func TestAPIClientSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization: %q", got)
		}
		var body struct {
			Message        string `json:"message"`
			ConversationID uint   `json:"conversationId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
			return
		}
		if body.Message != "hello" || body.ConversationID != 7 {
			t.Errorf("body: %+v", body)
		}
		json.NewEncoder(w).Encode(turn("hello", "hi", models.ChatAnalysis{Sentiment: models.SentimentNeutral}))
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL+"/", "tok")
	resp, err := c.SendMessage(context.Background(), 7, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if resp.AssistantMessage.Content != "hi" {
		t.Errorf("assistant: %+v", resp.AssistantMessage)
	}
}

func TestAPIClientDecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Message: "Not found"})
	}))
	defer srv.Close()

	_, err := NewAPIClient(srv.URL, "tok").ListMessages(context.Background(), 3)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "Not found" {
		t.Errorf("APIError: %+v", apiErr)
	}
}
