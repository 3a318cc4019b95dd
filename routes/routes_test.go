package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"MindfulChatGo/config"
	"MindfulChatGo/middleware"
	"MindfulChatGo/models"
	"MindfulChatGo/services"
	"MindfulChatGo/storage"
	"MindfulChatGo/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

type testServer struct {
	t     *testing.T
	r     *gin.Engine
	token string
}

func newTestServer(t *testing.T, production bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), logger.Silent)
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewGormStorage(db)
	exercises := services.NewExerciseService(store, nil, time.Minute)
	if _, err := exercises.SeedCatalog(context.Background()); err != nil {
		t.Fatal(err)
	}

	conf := config.Config{JWTSecret: "api-secret", CORSAllowOrigins: "*"}
	utils.InitJWT(conf.JWTSecret)
	r := gin.New()
	middleware.SetupMiddleware(r, conf)
	RegisterRoutes(r, Deps{
		Users:         services.NewUserService(store),
		Chat:          services.NewChatService(store, services.NewTemplateResponder(), services.TemplateAnalyzer{}),
		Conversations: services.NewConversationService(store),
		Exercises:     exercises,
		Moods:         services.NewMoodService(store),
		IsProduction:  production,
	})
	return &testServer{t: t, r: r}
}

func (s *testServer) do(method, path string, body interface{}, out interface{}) int {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

func (s *testServer) login() {
	s.t.Helper()
	var resp models.LoginResponse
	if code := s.do(http.MethodPost, "/api/auth/test-user", nil, &resp); code != http.StatusOK {
		s.t.Fatalf("test-user: %d", code)
	}
	s.token = resp.Token
}

func TestCreateConversationEmptyChunkedBody(t *testing.T) {
	s := newTestServer(t, false)
	s.login()

	req := httptest.NewRequest(http.MethodPost, "/api/conversations", io.NopCloser(strings.NewReader("")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	if req.ContentLength != -1 {
		t.Fatalf("want unknown length, got %d", req.ContentLength)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var conv models.Conversation
	if err := json.Unmarshal(w.Body.Bytes(), &conv); err != nil || conv.ID == 0 {
		t.Errorf("conversation %+v, err %v", conv, err)
	}

	if code := s.do(http.MethodPost, "/api/conversations", "not an object", nil); code != http.StatusBadRequest {
		t.Errorf("malformed body: got %d, want 400", code)
	}
}

func TestChatFlow(t *testing.T) {
	s := newTestServer(t, false)
	s.login()

	var conv models.Conversation
	if code := s.do(http.MethodPost, "/api/conversations", map[string]string{}, &conv); code != http.StatusOK {
		t.Fatalf("create conversation: %d", code)
	}

	var turn models.ChatTurnResponse
	code := s.do(http.MethodPost, "/api/chat", map[string]interface{}{
		"message":        "I want to end it all",
		"conversationId": conv.ID,
	}, &turn)
	if code != http.StatusOK {
		t.Fatalf("chat: %d", code)
	}
	if !turn.Analysis.RequiresImmediate {
		t.Error("crisis message should set requiresImmediate")
	}
	if turn.AssistantMessage.Content == "" || turn.UserMessage.Content != "I want to end it all" {
		t.Errorf("turn: %+v", turn)
	}

	var messages []models.Message
	path := fmt.Sprintf("/api/conversations/%d/messages", conv.ID)
	if code := s.do(http.MethodGet, path, nil, &messages); code != http.StatusOK || len(messages) != 2 {
		t.Fatalf("messages: %d %d", code, len(messages))
	}
	if messages[0].Role != models.RoleUser || messages[1].Role != models.RoleAssistant {
		t.Errorf("order: %s, %s", messages[0].Role, messages[1].Role)
	}

	var list []models.Conversation
	s.do(http.MethodGet, "/api/conversations", nil, &list)
	if len(list) != 1 || list[0].Title != "I want to end it all" {
		t.Errorf("conversations: %+v", list)
	}
}

func TestChatErrors(t *testing.T) {
	s := newTestServer(t, false)
	s.login()

	var errBody models.ErrorResponse
	if code := s.do(http.MethodPost, "/api/chat", map[string]string{"message": "hi"}, &errBody); code != http.StatusBadRequest || errBody.Message == "" {
		t.Errorf("missing conversationId: %d %+v", code, errBody)
	}
	if code := s.do(http.MethodPost, "/api/chat", map[string]interface{}{"message": "hi", "conversationId": 77}, &errBody); code != http.StatusNotFound {
		t.Errorf("unknown conversation: %d", code)
	}
	if code := s.do(http.MethodGet, "/api/conversations/abc/messages", nil, &errBody); code != http.StatusBadRequest {
		t.Errorf("bad id: %d", code)
	}

	s.token = ""
	if code := s.do(http.MethodPost, "/api/chat", map[string]interface{}{"message": "hi", "conversationId": 1}, &errBody); code != http.StatusUnauthorized {
		t.Errorf("no token: %d", code)
	}
}

func TestExerciseEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	var exercises []models.Exercise
	if code := s.do(http.MethodGet, "/api/exercises", nil, &exercises); code != http.StatusOK || len(exercises) != 4 {
		t.Fatalf("list: %d %d", code, len(exercises))
	}
	if code := s.do(http.MethodGet, "/api/exercises?category=journaling", nil, &exercises); code != http.StatusOK || len(exercises) != 1 {
		t.Fatalf("filter: %d %d", code, len(exercises))
	}
	var errBody models.ErrorResponse
	if code := s.do(http.MethodGet, "/api/exercises?category=yoga", nil, &errBody); code != http.StatusBadRequest {
		t.Errorf("bad category: %d", code)
	}

	s.login()
	var completion models.ExerciseCompletion
	if code := s.do(http.MethodPost, "/api/exercises/complete", map[string]interface{}{"exerciseId": exercises[0].ID, "rating": 4}, &completion); code != http.StatusOK {
		t.Fatalf("complete: %d", code)
	}
	if completion.UserID != "demo-user" || completion.Rating == nil || *completion.Rating != 4 {
		t.Errorf("completion: %+v", completion)
	}
	if code := s.do(http.MethodPost, "/api/exercises/complete", map[string]interface{}{"exerciseId": 404}, &errBody); code != http.StatusNotFound {
		t.Errorf("unknown exercise: %d", code)
	}
	if code := s.do(http.MethodPost, "/api/exercises/complete", map[string]interface{}{"exerciseId": exercises[0].ID, "rating": 9}, &errBody); code != http.StatusBadRequest {
		t.Errorf("bad rating: %d", code)
	}

	var seeded map[string]string
	if code := s.do(http.MethodPost, "/api/seed-exercises", nil, &seeded); code != http.StatusOK {
		t.Errorf("seed: %d", code)
	}
}

func TestMoodEndpoints(t *testing.T) {
	s := newTestServer(t, false)
	s.login()

	for _, mood := range []string{"tough", "okay", "good"} {
		var entry models.MoodEntry
		if code := s.do(http.MethodPost, "/api/mood", map[string]interface{}{"mood": mood, "moodScore": 0, "anxiety": 15}, &entry); code != http.StatusOK {
			t.Fatalf("create %s: %d", mood, code)
		}
		if entry.MoodScore != 1 || entry.Anxiety != 10 || entry.Energy != 5 {
			t.Errorf("scores not clamped: %+v", entry)
		}
	}

	var entries []models.MoodEntry
	if code := s.do(http.MethodGet, "/api/mood?limit=2", nil, &entries); code != http.StatusOK || len(entries) != 2 {
		t.Fatalf("list: %d %d", code, len(entries))
	}
	if entries[0].Mood != models.MoodGood {
		t.Errorf("newest first expected, got %s", entries[0].Mood)
	}

	var errBody models.ErrorResponse
	if code := s.do(http.MethodGet, "/api/mood?limit=abc", nil, &errBody); code != http.StatusBadRequest {
		t.Errorf("bad limit: %d", code)
	}
	if code := s.do(http.MethodPost, "/api/mood", map[string]string{"mood": "meh"}, &errBody); code != http.StatusBadRequest {
		t.Errorf("bad mood: %d", code)
	}
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t, false)
	s.login()

	var user models.User
	if code := s.do(http.MethodGet, "/api/auth/user", nil, &user); code != http.StatusOK || user.ID != "demo-user" {
		t.Errorf("current user: %d %+v", code, user)
	}

	var errBody models.ErrorResponse
	if code := s.do(http.MethodPost, "/api/auth/login", map[string]string{"token": "forged"}, &errBody); code != http.StatusUnauthorized {
		t.Errorf("forged login: %d", code)
	}
	if code := s.do(http.MethodPost, "/api/auth/login", map[string]string{}, &errBody); code != http.StatusBadRequest {
		t.Errorf("empty login: %d", code)
	}

	prod := newTestServer(t, true)
	if code := prod.do(http.MethodPost, "/api/auth/test-user", nil, &errBody); code != http.StatusNotFound {
		t.Errorf("test-user should be hidden in production: %d", code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	var body map[string]string
	if code := s.do(http.MethodGet, "/health", nil, &body); code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health: %d %v", code, body)
	}
}
