package todo

import (
	"errors"

	domain "github.com/example/todo-app/domain/todo"
)

// ServiceError carries a typed failure across the request-reply boundary,
// where Go error types do not survive.
type ServiceError struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ListTodosRequest is the request for list-todos.
type ListTodosRequest struct {
	UserID string `json:"user_id"`
}

// ListTodosResponse is the reply of list-todos.
type ListTodosResponse struct {
	Items []domain.Item `json:"items"`
	Error *ServiceError `json:"error,omitempty"`
}

// GetTodoRequest is the request for get-todo.
type GetTodoRequest struct {
	UserID string `json:"user_id"`
	ID     int64  `json:"id"`
}

// CreateTodoRequest is the request for create-todo.
type CreateTodoRequest struct {
	UserID string               `json:"user_id"`
	Todo   domain.CreateRequest `json:"todo"`
}

// UpdateTodoRequest is the request for update-todo.
type UpdateTodoRequest struct {
	UserID  string               `json:"user_id"`
	ID      int64                `json:"id"`
	Changes domain.UpdateRequest `json:"changes"`
}

// DeleteTodoRequest is the request for delete-todo.
type DeleteTodoRequest struct {
	UserID string `json:"user_id"`
	ID     int64  `json:"id"`
}

// TodoResponse is the reply of get-todo, create-todo and update-todo.
type TodoResponse struct {
	Item  *domain.Item  `json:"item,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// DeleteTodoResponse is the reply of delete-todo.
type DeleteTodoResponse struct {
	Deleted bool          `json:"deleted"`
	Error   *ServiceError `json:"error,omitempty"`
}

func toServiceError(err error) *ServiceError {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		e = internalError("unexpected error", err)
	}
	se := &ServiceError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
	}
	if e.Err != nil {
		se.Detail = e.Err.Error()
	}
	return se
}

// toError rebuilds the typed error. Known codes map back to their sentinel.
func (se *ServiceError) toError() error {
	if se == nil {
		return nil
	}
	for _, sentinel := range sentinels {
		if sentinel.Kind == se.Kind && sentinel.Code == se.Code {
			return sentinel
		}
	}
	e := &Error{Kind: se.Kind, Code: se.Code, Message: se.Message}
	if se.Detail != "" {
		e.Err = errors.New(se.Detail)
	}
	return e
}
