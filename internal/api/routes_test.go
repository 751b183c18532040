package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat_relay/internal/models"
	"chat_relay/internal/repository"
	"chat_relay/internal/service"
	"chat_relay/internal/storage"
)

const broadcast = "Todos"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testEnv struct {
	router   *gin.Engine
	services *service.Services
	clock    *testClock
	db       *storage.DB
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	services := service.NewServices(repository.NewRepositories(db), service.Options{
		Broadcast:      broadcast,
		ReaperInterval: time.Minute,
		ReaperTimeout:  10 * time.Second,
		Clock:          clock,
	}, log)

	r := gin.New()
	SetupRoutes(r, services, log)
	return &testEnv{router: r, services: services, clock: clock, db: db}
}

func (e *testEnv) do(method, path, user string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("User", user)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decodeMessages(t *testing.T, resp *httptest.ResponseRecorder) []models.Message {
	t.Helper()
	var messages []models.Message
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &messages))
	return messages
}

func TestJoinAndPostScenario(t *testing.T) {
	env := setupRouter(t)

	resp := env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = env.do(http.MethodPost, "/messages", "alice", gin.H{"to": broadcast, "text": "hi", "type": "message"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = env.do(http.MethodPost, "/messages", "bob", gin.H{"to": broadcast, "text": "hi", "type": "message"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = env.do(http.MethodGet, "/participants", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var participants []models.Participant
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &participants))
	require.Len(t, participants, 1)
	assert.Equal(t, "alice", participants[0].Name)
	assert.Equal(t, env.clock.Now().UnixMilli(), participants[0].LastStatus)
}

func TestJoinRejectsInvalidBody(t *testing.T) {
	env := setupRouter(t)

	for _, body := range []interface{}{
		gin.H{},
		gin.H{"name": ""},
		gin.H{"name": strings.Repeat("a", 16)},
	} {
		resp := env.do(http.MethodPost, "/participants", "", body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, "body %v", body)
	}

	resp := env.do(http.MethodGet, "/participants", "", nil)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestPostMessageRejectsInvalidShape(t *testing.T) {
	env := setupRouter(t)
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})

	for _, body := range []gin.H{
		{"to": broadcast, "text": "hi", "type": "status"},
		{"to": broadcast, "text": "", "type": "message"},
		{"to": "", "text": "hi", "type": "private_message"},
		{"text": "hi", "type": "message"},
	} {
		resp := env.do(http.MethodPost, "/messages", "alice", body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, "body %v", body)
	}

	resp := env.do(http.MethodPost, "/messages", "", gin.H{"to": broadcast, "text": "hi", "type": "message"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestListMessagesVisibilityAndLimit(t *testing.T) {
	env := setupRouter(t)
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "bob"})

	env.do(http.MethodPost, "/messages", "alice", gin.H{"to": "bob", "text": "private", "type": "private_message"})
	env.do(http.MethodPost, "/messages", "bob", gin.H{"to": "alice", "text": "public", "type": "message"})

	resp := env.do(http.MethodGet, "/messages", "carol", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	texts := []string{}
	for _, m := range decodeMessages(t, resp) {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{models.TextEntered, models.TextEntered, "public"}, texts)

	resp = env.do(http.MethodGet, "/messages?limit=2", "bob", nil)
	messages := decodeMessages(t, resp)
	require.Len(t, messages, 2)
	assert.Equal(t, "private", messages[0].Text)
	assert.Equal(t, "public", messages[1].Text)

	for _, query := range []string{"?limit=0", "?limit=-3", "?limit=abc", ""} {
		resp = env.do(http.MethodGet, "/messages"+query, "alice", nil)
		assert.Len(t, decodeMessages(t, resp), 4, "query %q", query)
	}
}

func TestHeartbeat(t *testing.T) {
	env := setupRouter(t)
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})

	env.clock.Advance(5 * time.Second)
	resp := env.do(http.MethodPost, "/status", "alice", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	participants, err := env.services.Registry.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, env.clock.Now().UnixMilli(), participants[0].LastStatus)

	resp = env.do(http.MethodPost, "/status", "ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = env.do(http.MethodPost, "/status", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteMessage(t *testing.T) {
	env := setupRouter(t)
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "bob"})

	resp := env.do(http.MethodPost, "/messages", "alice", gin.H{"to": broadcast, "text": "oops", "type": "message"})
	require.Equal(t, http.StatusCreated, resp.Code)
	var created models.Message
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.UID)

	path := "/messages/" + created.UID
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodDelete, path, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodDelete, path, "bob", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/messages/unknown", "alice", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodDelete, path, "alice", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, path, "alice", nil).Code)
}

func TestSweepAnnouncesDeparture(t *testing.T) {
	env := setupRouter(t)
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})

	env.clock.Advance(11 * time.Second)
	_, err := env.services.Reaper.Sweep(context.Background())
	require.NoError(t, err)

	resp := env.do(http.MethodGet, "/participants", "", nil)
	assert.JSONEq(t, `[]`, resp.Body.String())

	for _, reader := range []string{"bob", "zoe"} {
		messages := decodeMessages(t, env.do(http.MethodGet, "/messages?limit=1", reader, nil))
		require.Len(t, messages, 1)
		assert.Equal(t, "alice", messages[0].From)
		assert.Equal(t, models.TextLeft, messages[0].Text)
	}

	resp = env.do(http.MethodPost, "/messages", "alice", gin.H{"to": broadcast, "text": "still here?", "type": "message"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestStoreFailureReturns500(t *testing.T) {
	env := setupRouter(t)
	require.NoError(t, env.db.Close())

	assert.Equal(t, http.StatusInternalServerError, env.do(http.MethodGet, "/participants", "", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, env.do(http.MethodGet, "/messages", "alice", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, env.do(http.MethodPost, "/status", "alice", nil).Code)
	assert.Equal(t, http.StatusInternalServerError,
		env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"}).Code)
}

func TestHealthAndNoRoute(t *testing.T) {
	env := setupRouter(t)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/nope", "", nil).Code)
}

func TestWebSocketFeed(t *testing.T) {
	env := setupRouter(t)
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "alice"})
	env.do(http.MethodPost, "/participants", "", gin.H{"name": "bob"})

	server := httptest.NewServer(env.router)
	defer server.Close()
	defer env.services.Feed.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/messages/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"?user=ghost", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?user=alice", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return len(env.services.Feed.Readers()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// 第三方的私人訊息不會推送給 alice
	env.do(http.MethodPost, "/messages", "bob", gin.H{"to": "carol", "text": "secret", "type": "private_message"})
	env.do(http.MethodPost, "/messages", "bob", gin.H{"to": "alice", "text": "hello alice", "type": "private_message"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var pushed models.Message
	require.NoError(t, conn.ReadJSON(&pushed))
	assert.Equal(t, "hello alice", pushed.Text)
	assert.Equal(t, "bob", pushed.From)
}
