package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/notification"
	"github.com/example/todo-app/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RateLimiter supplies middleware for the public auth routes. A nil handler
// disables limiting.
type RateLimiter interface {
	Middleware() fiber.Handler
}

// Options configures the HTTP server.
type Options struct {
	Addr      string
	StaticDir string
	// RateLimiter may be nil.
	RateLimiter RateLimiter
}

// APIModule is the HTTP API module.
type APIModule struct {
	app      *fiber.App
	opts     Options
	auth     auth.AuthPort
	todos    todo.TodoPort
	activity notification.NotificationPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(opts Options) *APIModule {
	return &APIModule{
		opts: opts,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies. The ratelimit module
// must be started first when a limiter is configured.
func (m *APIModule) Dependencies() []string {
	deps := []string{"auth", "todo", "notification"}
	if m.opts.RateLimiter != nil {
		deps = append(deps, "ratelimit")
	}
	return deps
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.auth = auth.NewAuthAdapter(container)
	case "todo":
		m.todos = todo.NewTodoAdapter(container)
	case "notification":
		m.activity = notification.NewNotificationAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.auth == nil || m.todos == nil || m.activity == nil {
		return fmt.Errorf("auth, todo and notification dependencies must be set")
	}

	var limiter fiber.Handler
	if m.opts.RateLimiter != nil {
		limiter = m.opts.RateLimiter.Middleware()
	}

	m.app = NewApp(NewHandlers(m.auth, m.todos, m.activity), limiter, m.opts.StaticDir)

	// Start server in goroutine
	go func() {
		if err := m.app.Listen(m.opts.Addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.opts.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.opts.Addr,
		},
	}
}

// NewApp builds the Fiber application with every route registered.
// authLimiter may be nil; staticDir is served at / when it exists.
func NewApp(h *Handlers, authLimiter fiber.Handler, staticDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	authRoutes := app.Group("/api/auth")
	if authLimiter != nil {
		authRoutes.Use(authLimiter)
	}
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)

	requireUser := AuthMiddleware(h.auth)

	todos := app.Group("/api/todo", requireUser)
	todos.Get("", h.ListTodos)
	todos.Post("", h.CreateTodo)
	todos.Get("/:id<int>", h.GetTodo)
	todos.Put("/:id<int>", h.UpdateTodo)
	todos.Delete("/:id<int>", h.DeleteTodo)

	app.Get("/api/activity", requireUser, h.Activity)

	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			app.Static("/", staticDir)
		}
	}

	return app
}
