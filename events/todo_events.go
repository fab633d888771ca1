package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TodoCreatedEvent is emitted when a new item is stored.
type TodoCreatedEvent struct {
	TodoID    int64     `json:"todo_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoCreatedV1 is the typed event definition for item creation.
// Subject: events.todo.v1.todo-created
var TodoCreatedV1 = helper.EventDefinition[TodoCreatedEvent](
	"todo", "TodoCreated", "v1",
)

// TodoCompletedEvent is emitted when an item moves from incomplete to complete.
type TodoCompletedEvent struct {
	TodoID      int64     `json:"todo_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	CompletedOn time.Time `json:"completed_on"`
}

// TodoCompletedV1 is the typed event definition for item completion.
// Subject: events.todo.v1.todo-completed
var TodoCompletedV1 = helper.EventDefinition[TodoCompletedEvent](
	"todo", "TodoCompleted", "v1",
)

// TodoReopenedEvent is emitted when a complete item is marked incomplete again.
type TodoReopenedEvent struct {
	TodoID     int64     `json:"todo_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	ReopenedAt time.Time `json:"reopened_at"`
}

// TodoReopenedV1 is the typed event definition for item reopening.
// Subject: events.todo.v1.todo-reopened
var TodoReopenedV1 = helper.EventDefinition[TodoReopenedEvent](
	"todo", "TodoReopened", "v1",
)

// TodoDeletedEvent is emitted when an item is deleted.
type TodoDeletedEvent struct {
	TodoID    int64     `json:"todo_id"`
	UserID    string    `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TodoDeletedV1 is the typed event definition for item deletion.
// Subject: events.todo.v1.todo-deleted
var TodoDeletedV1 = helper.EventDefinition[TodoDeletedEvent](
	"todo", "TodoDeleted", "v1",
)
