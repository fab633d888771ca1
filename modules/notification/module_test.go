package notification

import (
	"context"
	"testing"

	"github.com/example/todo-app/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationModule_RecordsPerUser(t *testing.T) {
	m := NewModule()
	ctx := context.Background()

	require.NoError(t, m.handleTodoCreated(ctx, events.TodoCreatedEvent{TodoID: 1, UserID: "alice", Title: "Buy milk"}, nil))
	require.NoError(t, m.handleTodoCompleted(ctx, events.TodoCompletedEvent{TodoID: 1, UserID: "alice", Title: "Buy milk"}, nil))
	require.NoError(t, m.handleTodoCreated(ctx, events.TodoCreatedEvent{TodoID: 2, UserID: "bob", Title: "Walk dog"}, nil))
	require.NoError(t, m.handleTodoReopened(ctx, events.TodoReopenedEvent{TodoID: 1, UserID: "alice", Title: "Buy milk"}, nil))
	require.NoError(t, m.handleTodoDeleted(ctx, events.TodoDeletedEvent{TodoID: 1, UserID: "alice"}, nil))

	alice := m.Activity("alice")
	require.Len(t, alice, 4)
	assert.Equal(t, []string{"todo_created", "todo_completed", "todo_reopened", "todo_deleted"},
		[]string{alice[0].Type, alice[1].Type, alice[2].Type, alice[3].Type})
	assert.Equal(t, "Created 'Buy milk'", alice[0].Message)

	bob := m.Activity("bob")
	require.Len(t, bob, 1)
	assert.Equal(t, int64(2), bob[0].TodoID)

	assert.Empty(t, m.Activity("carol"))
}

func TestNotificationModule_BoundedFeed(t *testing.T) {
	m := NewModule()
	ctx := context.Background()

	for i := 1; i <= maxPerUser+5; i++ {
		require.NoError(t, m.handleTodoCreated(ctx, events.TodoCreatedEvent{TodoID: int64(i), UserID: "alice", Title: "x"}, nil))
	}

	feed := m.Activity("alice")
	require.Len(t, feed, maxPerUser)
	assert.Equal(t, int64(6), feed[0].TodoID)
	assert.Equal(t, int64(maxPerUser+5), feed[len(feed)-1].TodoID)
}

func TestNotificationModule_ActivityIsACopy(t *testing.T) {
	m := NewModule()
	require.NoError(t, m.handleTodoCreated(context.Background(), events.TodoCreatedEvent{TodoID: 1, UserID: "alice", Title: "x"}, nil))

	feed := m.Activity("alice")
	feed[0].Message = "changed"

	assert.Equal(t, "Created 'x'", m.Activity("alice")[0].Message)
}

func TestNotificationModule_ListActivityService(t *testing.T) {
	m := NewModule()
	require.NoError(t, m.handleTodoCreated(context.Background(), events.TodoCreatedEvent{TodoID: 1, UserID: "alice", Title: "x"}, nil))

	resp, err := m.handleListActivity(context.Background(), ListActivityRequest{UserID: "alice"}, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Activity, 1)
}
