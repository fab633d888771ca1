package api

import (
	"fmt"
	"log"

	domainTodo "github.com/example/todo-app/domain/todo"
	domain "github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/notification"
	"github.com/example/todo-app/modules/todo"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth     auth.AuthPort
	todos    todo.TodoPort
	activity notification.NotificationPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, todoPort todo.TodoPort, activityPort notification.NotificationPort) *Handlers {
	return &Handlers{
		auth:     authPort,
		todos:    todoPort,
		activity: activityPort,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AuthResult{Errors: []string{"Invalid request body."}})
	}

	resp, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return sendServiceError(c, err)
	}
	if !resp.Success {
		return c.Status(fiber.StatusBadRequest).JSON(AuthResult{Errors: resp.Errors})
	}

	return c.JSON(AuthResult{Success: true, Token: resp.Token, Email: resp.Email})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AuthResult{Errors: []string{"Invalid request body."}})
	}

	resp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return sendServiceError(c, err)
	}
	if !resp.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(AuthResult{Errors: resp.Errors})
	}

	return c.JSON(AuthResult{Success: true, Token: resp.Token, Email: resp.Email})
}

// ListTodos returns the caller's items ordered by id.
func (h *Handlers) ListTodos(c *fiber.Ctx) error {
	items, err := h.todos.ListTasks(c.UserContext(), userID(c))
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(items)
}

// GetTodo returns one of the caller's items.
func (h *Handlers) GetTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return sendServiceError(c, todo.ErrNotFound)
	}

	item, err := h.todos.GetTask(c.UserContext(), userID(c), id)
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(item)
}

// CreateTodo creates an item and points Location at it.
func (h *Handlers) CreateTodo(c *fiber.Ctx) error {
	var req domainTodo.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	item, err := h.todos.CreateTask(c.UserContext(), userID(c), req)
	if err != nil {
		return sendServiceError(c, err)
	}

	c.Location(fmt.Sprintf("/api/todo/%d", item.ID))
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateTodo applies a partial update to one of the caller's items.
func (h *Handlers) UpdateTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return sendServiceError(c, todo.ErrNotFound)
	}

	var req domainTodo.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	item, err := h.todos.UpdateTask(c.UserContext(), userID(c), id, req)
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(item)
}

// DeleteTodo removes one of the caller's items.
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return sendServiceError(c, todo.ErrNotFound)
	}

	if err := h.todos.DeleteTask(c.UserContext(), userID(c), id); err != nil {
		return sendServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activity returns the caller's recent to-do activity.
func (h *Handlers) Activity(c *fiber.Ctx) error {
	entries, err := h.activity.ListActivity(c.UserContext(), userID(c))
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(entries)
}

// userID returns the verified caller set by AuthMiddleware.
func userID(c *fiber.Ctx) string {
	if claims, ok := c.Locals(UserContextKey).(*domain.Claims); ok {
		return claims.UserID
	}
	return ""
}

// todoID reads the route id. Routes constrain it to an integer, so a parse
// failure means the value overflowed and no item can match.
func todoID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, false
	}
	return int64(id), true
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("[api] Rejected request body on %s %s: %v", c.Method(), c.Path(), err)
	return sendProblem(c, ProblemDetails{
		Title:  "Invalid request body.",
		Status: fiber.StatusBadRequest,
		Detail: err.Error(),
		Code:   "invalid_body",
	})
}
