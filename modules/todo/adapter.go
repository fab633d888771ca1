package todo

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TodoPort is the port other modules use to reach the to-do service.
// *Service satisfies it directly; TodoAdapter satisfies it over request-reply.
type TodoPort interface {
	ListTasks(ctx context.Context, userID string) ([]domain.Item, error)
	GetTask(ctx context.Context, userID string, id int64) (*domain.Item, error)
	CreateTask(ctx context.Context, userID string, req domain.CreateRequest) (*domain.Item, error)
	UpdateTask(ctx context.Context, userID string, id int64, req domain.UpdateRequest) (*domain.Item, error)
	DeleteTask(ctx context.Context, userID string, id int64) error
}

var _ TodoPort = (*Service)(nil)
var _ TodoPort = (*TodoAdapter)(nil)

// TodoAdapter implements TodoPort using the service container.
type TodoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new TodoAdapter.
func NewTodoAdapter(container mono.ServiceContainer) *TodoAdapter {
	return &TodoAdapter{
		container: container,
	}
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// ListTasks returns the user's items ordered by id.
func (a *TodoAdapter) ListTasks(ctx context.Context, userID string) ([]domain.Item, error) {
	req := ListTodosRequest{UserID: userID}
	var resp ListTodosResponse
	if err := call(ctx, a.container, "list-todos", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error.toError()
	}
	if resp.Items == nil {
		resp.Items = []domain.Item{}
	}
	return resp.Items, nil
}

// GetTask returns one of the user's items.
func (a *TodoAdapter) GetTask(ctx context.Context, userID string, id int64) (*domain.Item, error) {
	req := GetTodoRequest{UserID: userID, ID: id}
	return callItem(ctx, a.container, "get-todo", &req)
}

// CreateTask stores a new item.
func (a *TodoAdapter) CreateTask(ctx context.Context, userID string, todo domain.CreateRequest) (*domain.Item, error) {
	req := CreateTodoRequest{UserID: userID, Todo: todo}
	return callItem(ctx, a.container, "create-todo", &req)
}

// UpdateTask merges changes into one of the user's items.
func (a *TodoAdapter) UpdateTask(ctx context.Context, userID string, id int64, changes domain.UpdateRequest) (*domain.Item, error) {
	req := UpdateTodoRequest{UserID: userID, ID: id, Changes: changes}
	return callItem(ctx, a.container, "update-todo", &req)
}

// DeleteTask removes one of the user's items.
func (a *TodoAdapter) DeleteTask(ctx context.Context, userID string, id int64) error {
	req := DeleteTodoRequest{UserID: userID, ID: id}
	var resp DeleteTodoResponse
	if err := call(ctx, a.container, "delete-todo", &req, &resp); err != nil {
		return err
	}
	return resp.Error.toError()
}

func callItem[Req any](ctx context.Context, container mono.ServiceContainer, service string, req *Req) (*domain.Item, error) {
	var resp TodoResponse
	if err := call(ctx, container, service, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error.toError()
	}
	if resp.Item == nil {
		return nil, internalError(service+" returned no item", nil)
	}
	return resp.Item, nil
}
