package todo

import (
	"context"
	"testing"
	"time"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientModule depends on todo and captures its service container.
type clientModule struct {
	container mono.ServiceContainer
}

var _ mono.DependentModule = (*clientModule)(nil)

func (m *clientModule) Name() string                  { return "todo-client" }
func (m *clientModule) Dependencies() []string        { return []string{"todo"} }
func (m *clientModule) Start(_ context.Context) error { return nil }
func (m *clientModule) Stop(_ context.Context) error  { return nil }

func (m *clientModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "todo" {
		m.container = container
	}
}

// startAdapter runs the todo module in an in-process mono application and
// returns an adapter bound to it.
func startAdapter(t *testing.T) *TodoAdapter {
	t.Helper()

	svc, _ := setupTestService(t)

	app, err := mono.NewMonoApplication(
		mono.WithNATSDontListen(),
		mono.WithNATSInProcessConn(),
		mono.WithLogLevel(mono.LogLevelError),
	)
	require.NoError(t, err)

	client := &clientModule{}
	require.NoError(t, app.Register(NewModuleWithService(svc)))
	require.NoError(t, app.Register(client))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))
	t.Cleanup(func() { _ = app.Stop(context.Background()) })

	require.NotNil(t, client.container)
	return NewTodoAdapter(client.container)
}

func TestTodoAdapter_RoundTrip(t *testing.T) {
	adapter := startAdapter(t)
	ctx := context.Background()

	items, err := adapter.ListTasks(ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	due := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	created, err := adapter.CreateTask(ctx, alice, domain.CreateRequest{Title: "Buy milk", CompleteBy: &due})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.CompleteBy)
	assert.True(t, due.Equal(*created.CompleteBy))

	got, err := adapter.GetTask(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)

	// explicit null must survive the hop and clear the due date
	completedOn := time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)
	updated, err := adapter.UpdateTask(ctx, alice, created.ID, domain.UpdateRequest{
		IsComplete:  domain.Some(true),
		CompletedOn: domain.Some(completedOn),
		CompleteBy:  domain.Null[time.Time](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.True(t, updated.IsComplete)
	require.NotNil(t, updated.CompletedOn)
	assert.True(t, completedOn.Equal(*updated.CompletedOn))
	assert.Nil(t, updated.CompleteBy)

	items, err = adapter.ListTasks(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	require.NoError(t, adapter.DeleteTask(ctx, alice, created.ID))

	err = adapter.DeleteTask(ctx, alice, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Same(t, ErrNotFound, err)
}

func TestTodoAdapter_ErrorsKeepTheirKind(t *testing.T) {
	adapter := startAdapter(t)
	ctx := context.Background()

	item, err := adapter.CreateTask(ctx, alice, domain.CreateRequest{Title: "private"})
	require.NoError(t, err)

	_, err = adapter.GetTask(ctx, bob, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = adapter.CreateTask(ctx, alice, domain.CreateRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrTitleEmpty)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = adapter.UpdateTask(ctx, alice, item.ID, domain.UpdateRequest{IsComplete: domain.Some(true)})
	assert.ErrorIs(t, err, ErrCompletedOnRequired)

	_, err = adapter.UpdateTask(ctx, alice, item.ID, domain.UpdateRequest{Title: domain.Null[string]()})
	assert.ErrorIs(t, err, ErrTitleEmpty)

	_, err = adapter.UpdateTask(ctx, alice, 999, domain.UpdateRequest{Title: domain.Some("")})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := adapter.GetTask(ctx, alice, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
	assert.False(t, got.IsComplete)
}
