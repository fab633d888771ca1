package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/todo-app/config"
	"github.com/example/todo-app/database"
	domain "github.com/example/todo-app/domain/todo"
	"github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// TodoModule owns to-do items and exposes the Service over request-reply.
type TodoModule struct {
	db       *gorm.DB
	dbConfig config.Database
	service  *Service
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.EventEmitterModule = (*TodoModule)(nil)
var _ mono.HealthCheckableModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule.
func NewModule(dbConfig config.Database) *TodoModule {
	return &TodoModule{
		dbConfig: dbConfig,
	}
}

// NewModuleWithService creates a TodoModule around an existing service.
// This constructor enables dependency injection for testing.
func NewModuleWithService(service *Service) *TodoModule {
	return &TodoModule{
		service: service,
	}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// SetEventBus receives the event bus from the framework.
func (m *TodoModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TodoModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TodoCreatedV1.ToBase(),
		events.TodoCompletedV1.ToBase(),
		events.TodoReopenedV1.ToBase(),
		events.TodoDeletedV1.ToBase(),
	}
}

// Start opens the database and builds the service.
func (m *TodoModule) Start(_ context.Context) error {
	if m.service != nil {
		return nil
	}

	db, err := database.Open(m.dbConfig)
	if err != nil {
		return err
	}
	m.db = db

	// users is migrated here too so the foreign key has a target regardless of module order
	if err := db.AutoMigrate(&user.User{}, &domain.Item{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewGormStore(db), &eventNotifier{module: m})

	log.Printf("[todo] Module started (database: %s)", database.Describe(m.dbConfig))
	return nil
}

// Stop closes the database.
func (m *TodoModule) Stop(_ context.Context) error {
	if err := database.Close(m.db); err != nil {
		log.Printf("[todo] Warning: failed to close database: %v", err)
	}
	log.Println("[todo] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TodoModule) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}
	if m.db == nil {
		return mono.HealthStatus{Healthy: true, Message: "operational"}
	}
	if err := database.Ping(ctx, m.db); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": database.Describe(m.dbConfig),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-todos", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list-todos service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-todo", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get-todo service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-todo", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create-todo service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update-todo", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update-todo service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-todo", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete-todo service: %w", err)
	}

	log.Printf("[todo] Registered services: list-todos, get-todo, create-todo, update-todo, delete-todo")
	return nil
}

// Domain failures travel in the reply envelope; the handler error is reserved
// for transport problems.

func (m *TodoModule) handleList(ctx context.Context, req ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	items, err := m.service.ListTasks(ctx, req.UserID)
	if err != nil {
		return ListTodosResponse{Error: toServiceError(err)}, nil
	}
	return ListTodosResponse{Items: items}, nil
}

func (m *TodoModule) handleGet(ctx context.Context, req GetTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	item, err := m.service.GetTask(ctx, req.UserID, req.ID)
	if err != nil {
		return TodoResponse{Error: toServiceError(err)}, nil
	}
	return TodoResponse{Item: item}, nil
}

func (m *TodoModule) handleCreate(ctx context.Context, req CreateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	item, err := m.service.CreateTask(ctx, req.UserID, req.Todo)
	if err != nil {
		return TodoResponse{Error: toServiceError(err)}, nil
	}
	return TodoResponse{Item: item}, nil
}

func (m *TodoModule) handleUpdate(ctx context.Context, req UpdateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	item, err := m.service.UpdateTask(ctx, req.UserID, req.ID, req.Changes)
	if err != nil {
		return TodoResponse{Error: toServiceError(err)}, nil
	}
	return TodoResponse{Item: item}, nil
}

func (m *TodoModule) handleDelete(ctx context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	if err := m.service.DeleteTask(ctx, req.UserID, req.ID); err != nil {
		return DeleteTodoResponse{Error: toServiceError(err)}, nil
	}
	return DeleteTodoResponse{Deleted: true}, nil
}
