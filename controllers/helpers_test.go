package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"RubyAI/middleware"
	"RubyAI/models"
	"RubyAI/pkg/services"
	"RubyAI/pkg/session"
	"RubyAI/routes"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestRouter wires the full route tree against an in-memory database.
// A nil chat service gets a default text stub.
func newTestRouter(t *testing.T, chat *services.ChatService) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetRateLimitConfig(time.Second, 1000, 4)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}, &models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if chat == nil {
		chat = &services.ChatService{
			Text:    &services.StubModel{Chunks: []string{"stub reply"}},
			Vision:  &services.StubModel{Chunks: []string{"stub vision reply"}},
			Timeout: 5 * time.Second,
		}
	}
	sessions := session.NewStore(db, time.Hour, 100)

	r := gin.New()
	routes.RegisterRoutes(r, db, sessions, chat)
	return r, db
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser creates an account and returns its session cookie and id.
func registerUser(t *testing.T, r *gin.Engine, username, password string) (*http.Cookie, uint) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": username, "password": password}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("register response: %v", err)
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck, resp.ID
		}
	}
	t.Fatalf("register %s: no session cookie issued", username)
	return nil, 0
}

// createConversation returns the new conversation's id.
func createConversation(t *testing.T, r *gin.Engine, cookie *http.Cookie, title string) uint {
	t.Helper()
	var body any
	if title != "" {
		body = gin.H{"title": title}
	}
	w := doJSON(r, http.MethodPost, "/api/conversations", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create conversation: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("create conversation response: %v", err)
	}
	return resp.ID
}

type sseEvent struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
	Error   string `json:"error"`
}

// parseSSE decodes every `data: <JSON>` frame in body.
func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev sseEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatalf("bad SSE frame %q: %v", line, err)
		}
		events = append(events, ev)
	}
	return events
}

func conversationMessages(t *testing.T, r *gin.Engine, cookie *http.Cookie, id uint) []sseMessage {
	t.Helper()
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/api/conversations/%d", id), nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("get conversation %d: status %d body %s", id, w.Code, w.Body.String())
	}
	var resp struct {
		Messages []sseMessage `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("get conversation response: %v", err)
	}
	return resp.Messages
}

type sseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
