package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/todo-app/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// maxPerUser bounds the activity kept for each user; older entries drop off.
const maxPerUser = 100

// Activity is one entry in a user's activity feed.
type Activity struct {
	TodoID    int64     `json:"todoId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule records to-do lifecycle events as a per-user activity feed.
type NotificationModule struct {
	mu       sync.RWMutex
	activity map[string][]Activity
	now      func() time.Time
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)
var _ mono.ServiceProviderModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		activity: make(map[string][]Activity),
		now:      time.Now,
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoCreatedV1, m.handleTodoCreated, m); err != nil {
		return fmt.Errorf("failed to register TodoCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoCompletedV1, m.handleTodoCompleted, m); err != nil {
		return fmt.Errorf("failed to register TodoCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoReopenedV1, m.handleTodoReopened, m); err != nil {
		return fmt.Errorf("failed to register TodoReopened consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoDeletedV1, m.handleTodoDeleted, m); err != nil {
		return fmt.Errorf("failed to register TodoDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TodoCreated, TodoCompleted, TodoReopened, TodoDeleted")
	return nil
}

func (m *NotificationModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"list-activity",
		json.Unmarshal,
		json.Marshal,
		m.handleListActivity,
	); err != nil {
		return fmt.Errorf("failed to register list-activity service: %w", err)
	}

	log.Printf("[notification] Registered services: list-activity")
	return nil
}

func (m *NotificationModule) handleTodoCreated(_ context.Context, event events.TodoCreatedEvent, _ *mono.Msg) error {
	m.record(event.UserID, event.TodoID, "todo_created", fmt.Sprintf("Created '%s'", event.Title))
	return nil
}

func (m *NotificationModule) handleTodoCompleted(_ context.Context, event events.TodoCompletedEvent, _ *mono.Msg) error {
	m.record(event.UserID, event.TodoID, "todo_completed", fmt.Sprintf("Completed '%s'", event.Title))
	return nil
}

func (m *NotificationModule) handleTodoReopened(_ context.Context, event events.TodoReopenedEvent, _ *mono.Msg) error {
	m.record(event.UserID, event.TodoID, "todo_reopened", fmt.Sprintf("Reopened '%s'", event.Title))
	return nil
}

func (m *NotificationModule) handleTodoDeleted(_ context.Context, event events.TodoDeletedEvent, _ *mono.Msg) error {
	m.record(event.UserID, event.TodoID, "todo_deleted", fmt.Sprintf("Deleted todo %d", event.TodoID))
	return nil
}

func (m *NotificationModule) handleListActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	return ListActivityResponse{Activity: m.Activity(req.UserID)}, nil
}

func (m *NotificationModule) record(userID string, todoID int64, activityType, message string) {
	if userID == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entries := append(m.activity[userID], Activity{
		TodoID:    todoID,
		Type:      activityType,
		Message:   message,
		Timestamp: m.now(),
	})
	if len(entries) > maxPerUser {
		entries = entries[len(entries)-maxPerUser:]
	}
	m.activity[userID] = entries
}

// Activity returns a copy of the user's feed, oldest first.
func (m *NotificationModule) Activity(userID string) []Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Activity, len(m.activity[userID]))
	copy(result, m.activity[userID])
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for todo events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
