package todo

import (
	"context"
	"log"
	"time"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/example/todo-app/events"
	"github.com/go-monolith/mono"
)

// eventNotifier publishes lifecycle events on the module's event bus.
// Publishing is best-effort; failures are logged and never fail the operation.
type eventNotifier struct {
	module *TodoModule
}

var _ Notifier = (*eventNotifier)(nil)

func (n *eventNotifier) bus() mono.EventBus {
	return n.module.eventBus
}

func (n *eventNotifier) Created(_ context.Context, item domain.Item) {
	if n.bus() == nil {
		return
	}
	event := events.TodoCreatedEvent{
		TodoID:    item.ID,
		UserID:    item.UserID,
		Title:     item.Title,
		CreatedAt: time.Now(),
	}
	if err := events.TodoCreatedV1.Publish(n.bus(), event, nil); err != nil {
		log.Printf("[todo] Warning: failed to publish TodoCreated event for todo %d: %v", item.ID, err)
	}
}

func (n *eventNotifier) Completed(_ context.Context, item domain.Item) {
	if n.bus() == nil {
		return
	}
	event := events.TodoCompletedEvent{
		TodoID: item.ID,
		UserID: item.UserID,
		Title:  item.Title,
	}
	if item.CompletedOn != nil {
		event.CompletedOn = *item.CompletedOn
	}
	if err := events.TodoCompletedV1.Publish(n.bus(), event, nil); err != nil {
		log.Printf("[todo] Warning: failed to publish TodoCompleted event for todo %d: %v", item.ID, err)
	}
}

func (n *eventNotifier) Reopened(_ context.Context, item domain.Item) {
	if n.bus() == nil {
		return
	}
	event := events.TodoReopenedEvent{
		TodoID:     item.ID,
		UserID:     item.UserID,
		Title:      item.Title,
		ReopenedAt: time.Now(),
	}
	if err := events.TodoReopenedV1.Publish(n.bus(), event, nil); err != nil {
		log.Printf("[todo] Warning: failed to publish TodoReopened event for todo %d: %v", item.ID, err)
	}
}

func (n *eventNotifier) Deleted(_ context.Context, userID string, id int64) {
	if n.bus() == nil {
		return
	}
	event := events.TodoDeletedEvent{
		TodoID:    id,
		UserID:    userID,
		DeletedAt: time.Now(),
	}
	if err := events.TodoDeletedV1.Publish(n.bus(), event, nil); err != nil {
		log.Printf("[todo] Warning: failed to publish TodoDeleted event for todo %d: %v", id, err)
	}
}
