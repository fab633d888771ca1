package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/todo-app/config"
	"github.com/example/todo-app/database"
	domainTodo "github.com/example/todo-app/domain/todo"
	domain "github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/notification"
	"github.com/example/todo-app/modules/todo"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

// tokenAuth accepts one fixed token per user.
func tokenAuth() *mockAuthPort {
	users := map[string]*domain.Claims{
		aliceToken: {UserID: "user-alice", Email: "alice@example.com"},
		bobToken:   {UserID: "user-bob", Email: "bob@example.com"},
	}
	return &mockAuthPort{
		validateTokenFunc: func(_ context.Context, token string) (*domain.Claims, error) {
			if claims, ok := users[token]; ok {
				return claims, nil
			}
			return nil, auth.ErrInvalidToken
		},
	}
}

type stubActivity struct {
	entries map[string][]notification.Activity
}

func (s *stubActivity) ListActivity(_ context.Context, userID string) ([]notification.Activity, error) {
	return s.entries[userID], nil
}

// failingTodos fails every operation with err.
type failingTodos struct {
	err error
}

func (f failingTodos) ListTasks(context.Context, string) ([]domainTodo.Item, error) {
	return nil, f.err
}

func (f failingTodos) GetTask(context.Context, string, int64) (*domainTodo.Item, error) {
	return nil, f.err
}

func (f failingTodos) CreateTask(context.Context, string, domainTodo.CreateRequest) (*domainTodo.Item, error) {
	return nil, f.err
}

func (f failingTodos) UpdateTask(context.Context, string, int64, domainTodo.UpdateRequest) (*domainTodo.Item, error) {
	return nil, f.err
}

func (f failingTodos) DeleteTask(context.Context, string, int64) error {
	return f.err
}

func newTestService(t *testing.T) *todo.Service {
	t.Helper()

	db, err := database.Open(config.Database{Driver: config.DriverSQLite, Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domainTodo.Item{}))
	for _, id := range []string{"user-alice", "user-bob"} {
		require.NoError(t, db.Create(&domain.User{ID: id, Email: id + "@example.com", PasswordHash: "x"}).Error)
	}
	return todo.NewService(todo.NewGormStore(db), nil)
}

func newTestApp(t *testing.T, authPort auth.AuthPort, todos todo.TodoPort) *fiber.App {
	t.Helper()
	return NewApp(NewHandlers(authPort, todos, &stubActivity{}), nil, "")
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeProblem(t *testing.T, resp *http.Response, body []byte) ProblemDetails {
	t.Helper()
	assert.Equal(t, problemContentType, resp.Header.Get("Content-Type"))

	var p ProblemDetails
	require.NoError(t, json.Unmarshal(body, &p))
	return p
}

func TestTodoLifecycle(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	resp, body := do(t, app, "GET", "/api/todo", aliceToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, body = do(t, app, "POST", "/api/todo", aliceToken, `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/todo/1", resp.Header.Get("Location"))

	var created domainTodo.Item
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.IsComplete)
	assert.Nil(t, created.CompletedOn)
	assert.NotContains(t, string(body), "user-alice")

	resp, body = do(t, app, "PUT", "/api/todo/1", aliceToken, `{"isComplete":true}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	p := decodeProblem(t, resp, body)
	assert.Equal(t, "CompletedOn date must be provided when marking a todo as complete.", p.Title)
	assert.Equal(t, "completed_on_required", p.Code)

	resp, body = do(t, app, "PUT", "/api/todo/1", aliceToken, `{"isComplete":true,"completedOn":"2026-03-01T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domainTodo.Item
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.True(t, updated.IsComplete)
	require.NotNil(t, updated.CompletedOn)
	assert.Equal(t, "Buy milk", updated.Title)

	resp, _ = do(t, app, "GET", "/api/todo/1", bobToken, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, "DELETE", "/api/todo/1", bobToken, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, "DELETE", "/api/todo/1", aliceToken, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, "DELETE", "/api/todo/1", aliceToken, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	p = decodeProblem(t, resp, body)
	assert.Equal(t, "Todo item not found.", p.Title)
	assert.Equal(t, http.StatusNotFound, p.Status)
}

func TestListTodos_OnlyOwnItemsInIDOrder(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	for _, title := range []string{"first", "second"} {
		resp, _ := do(t, app, "POST", "/api/todo", aliceToken, `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, _ := do(t, app, "POST", "/api/todo", bobToken, `{"title":"bob's"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, app, "GET", "/api/todo", aliceToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []domainTodo.Item
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
}

func TestCreateTodo_Validation(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	tests := []struct {
		name      string
		body      string
		wantTitle string
		wantCode  string
	}{
		{"blank title", `{"title":"   "}`, "Request title cannot be null or empty.", "title_empty"},
		{"missing title", `{}`, "Request title cannot be null or empty.", "title_empty"},
		{"malformed body", `{"title":`, "Invalid request body.", "invalid_body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, "POST", "/api/todo", aliceToken, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			p := decodeProblem(t, resp, body)
			assert.Equal(t, tt.wantTitle, p.Title)
			assert.Equal(t, tt.wantCode, p.Code)
			assert.Equal(t, "https://tools.ietf.org/html/rfc9110#section-15.5.1", p.Type)
		})
	}
}

func TestCreateTodo_CompleteWithoutDateIsAccepted(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	resp, body := do(t, app, "POST", "/api/todo", aliceToken, `{"title":"done already","isComplete":true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item domainTodo.Item
	require.NoError(t, json.Unmarshal(body, &item))
	assert.True(t, item.IsComplete)
	assert.Nil(t, item.CompletedOn)
}

func TestUpdateTodo_MissingItemBeforeValidation(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	resp, body := do(t, app, "PUT", "/api/todo/42", aliceToken, `{"title":""}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Todo item not found.", decodeProblem(t, resp, body).Title)
}

func TestTodoRoutes_RequireToken(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	for _, path := range []string{"/api/todo", "/api/todo/1", "/api/activity"} {
		resp, _ := do(t, app, "GET", path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, _ := do(t, app, "GET", "/api/todo", "forged", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTodoRoutes_NonNumericID(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	resp, body := do(t, app, "GET", "/api/todo/abc", aliceToken, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, decodeProblem(t, resp, body).Status)
}

func TestTodoRoutes_InternalError(t *testing.T) {
	app := newTestApp(t, tokenAuth(), failingTodos{err: errors.New("database is locked")})

	resp, body := do(t, app, "GET", "/api/todo", aliceToken, "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	p := decodeProblem(t, resp, body)
	assert.Equal(t, "An unexpected error occurred.", p.Title)
	assert.Contains(t, p.Detail, "database is locked")
	assert.Equal(t, "https://tools.ietf.org/html/rfc9110#section-15.6.1", p.Type)
}

func TestRegisterAndLogin(t *testing.T) {
	authPort := tokenAuth()
	authPort.registerFunc = func(_ context.Context, email, password string) (*auth.AuthResponse, error) {
		if email == "taken@example.com" {
			return &auth.AuthResponse{Errors: []string{"Email 'taken@example.com' is already taken."}}, nil
		}
		return &auth.AuthResponse{Success: true, Token: "jwt", Email: email}, nil
	}
	authPort.loginFunc = func(_ context.Context, email, password string) (*auth.AuthResponse, error) {
		if password != "Password123!" {
			return &auth.AuthResponse{Errors: []string{"Invalid email or password."}}, nil
		}
		return &auth.AuthResponse{Success: true, Token: "jwt", Email: email}, nil
	}
	app := newTestApp(t, authPort, newTestService(t))

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "register succeeds",
			path:       "/api/auth/register",
			body:       `{"email":"new@example.com","password":"Password123!"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"token":"jwt","email":"new@example.com"}`,
		},
		{
			name:       "register refused",
			path:       "/api/auth/register",
			body:       `{"email":"taken@example.com","password":"Password123!"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"errors":["Email 'taken@example.com' is already taken."]}`,
		},
		{
			name:       "login succeeds",
			path:       "/api/auth/login",
			body:       `{"email":"user@test.com","password":"Password123!"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"token":"jwt","email":"user@test.com"}`,
		},
		{
			name:       "login refused",
			path:       "/api/auth/login",
			body:       `{"email":"user@test.com","password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"errors":["Invalid email or password."]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, "POST", tt.path, "", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	authPort := tokenAuth()
	authPort.loginFunc = func(_ context.Context, email, _ string) (*auth.AuthResponse, error) {
		return &auth.AuthResponse{Success: true, Token: "jwt", Email: email}, nil
	}
	blocked := func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTooManyRequests)
	}
	app := NewApp(NewHandlers(authPort, newTestService(t), &stubActivity{}), blocked, "")

	resp, _ := do(t, app, "POST", "/api/auth/login", "", `{"email":"a@b.c","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// todo routes are not limited
	resp, _ = do(t, app, "GET", "/api/todo", aliceToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestActivity(t *testing.T) {
	activity := &stubActivity{entries: map[string][]notification.Activity{
		"user-alice": {{TodoID: 1, Type: "todo_created", Message: "Created 'Buy milk'"}},
	}}
	app := NewApp(NewHandlers(tokenAuth(), newTestService(t), activity), nil, "")

	resp, body := do(t, app, "GET", "/api/activity", aliceToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []notification.Activity
	require.NoError(t, json.Unmarshal(body, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "todo_created", entries[0].Type)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, tokenAuth(), newTestService(t))

	resp, body := do(t, app, "GET", "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"healthy"`)
}
