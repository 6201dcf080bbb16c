package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-central/cache"
	"conference-central/database"
	"conference-central/handlers"
	"conference-central/middleware"
	"conference-central/model"
	"conference-central/router"
	"conference-central/tasks"
)

const testSecret = "test-secret"

type Test struct {
	description  string
	method       string
	route        string
	token        string
	body         interface{}
	expectedCode int
}

type recordingQueue struct {
	mu    sync.Mutex
	tasks []tasks.Task
}

func (q *recordingQueue) Enqueue(task tasks.Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return true
}

func (q *recordingQueue) ofKind(kind tasks.Kind) []tasks.Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := []tasks.Task{}
	for _, task := range q.tasks {
		if task.Kind == kind {
			out = append(out, task)
		}
	}
	return out
}

type env struct {
	app   *fiber.App
	store *database.MemoryStore
	cache *cache.MemoryCache
	queue *recordingQueue
}

func newEnv() *env {
	e := &env{
		app:   fiber.New(),
		store: database.NewMemoryStore(),
		cache: cache.NewMemoryCache(),
		queue: &recordingQueue{},
	}
	router.SetupRoutes(e.app, handlers.New(e.store, e.cache, e.queue, nil, testSecret, time.Hour))
	return e
}

func tokenFor(t *testing.T, userId string) string {
	t.Helper()
	token, err := middleware.IssueToken(testSecret, model.Identity{
		UserId:   userId,
		Email:    userId + "@example.com",
		Nickname: userId,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, route, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, route, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func (e *env) run(t *testing.T, tests []Test) {
	t.Helper()
	for _, test := range tests {
		code, body := e.do(t, test.method, test.route, test.token, test.body)
		assert.Equalf(t, test.expectedCode, code, "%s: %s", test.description, body)
	}
}

func decode(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, out), string(data))
}

func errorMessage(t *testing.T, data []byte) string {
	t.Helper()
	var envelope struct {
		Status string `json:"status"`
		Data   string `json:"data"`
	}
	decode(t, data, &envelope)
	assert.Equal(t, "error", envelope.Status)
	return envelope.Data
}

func (e *env) createConference(t *testing.T, token string, form map[string]interface{}) model.ConferenceForm {
	t.Helper()
	code, body := e.do(t, "POST", "/conference", token, form)
	require.Equal(t, 200, code, string(body))
	var created model.ConferenceForm
	decode(t, body, &created)
	return created
}

func (e *env) createSession(t *testing.T, token, websafeConferenceKey string, form map[string]interface{}) model.SessionForm {
	t.Helper()
	code, body := e.do(t, "POST", "/createSession/"+websafeConferenceKey, token, form)
	require.Equal(t, 200, code, string(body))
	var created model.SessionForm
	decode(t, body, &created)
	return created
}

func booleanResult(t *testing.T, data []byte) bool {
	t.Helper()
	var msg model.BooleanMessage
	decode(t, data, &msg)
	return msg.Data
}

func keyId(t *testing.T, websafe string) string {
	t.Helper()
	key, err := model.DecodeKey(websafe)
	require.NoError(t, err)
	return key.Id
}
