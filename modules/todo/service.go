package todo

import (
	"context"
	"errors"
	"strings"

	domain "github.com/example/todo-app/domain/todo"
)

// Notifier observes successful mutations. Implementations must not block.
type Notifier interface {
	Created(ctx context.Context, item domain.Item)
	Completed(ctx context.Context, item domain.Item)
	Reopened(ctx context.Context, item domain.Item)
	Deleted(ctx context.Context, userID string, id int64)
}

type noopNotifier struct{}

func (noopNotifier) Created(context.Context, domain.Item)   {}
func (noopNotifier) Completed(context.Context, domain.Item) {}
func (noopNotifier) Reopened(context.Context, domain.Item)  {}
func (noopNotifier) Deleted(context.Context, string, int64) {}

// Service enforces ownership, validation and the completion lifecycle of items.
// The caller's user id is an explicit argument to every operation.
type Service struct {
	store    Store
	notifier Notifier
}

// NewService creates a new Service. A nil notifier disables notifications.
func NewService(store Store, notifier Notifier) *Service {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Service{
		store:    store,
		notifier: notifier,
	}
}

// ListTasks returns the user's items ordered by id.
func (s *Service) ListTasks(ctx context.Context, userID string) ([]domain.Item, error) {
	items, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, internalError("failed to list todos", err)
	}
	return items, nil
}

// GetTask returns one of the user's items.
func (s *Service) GetTask(ctx context.Context, userID string, id int64) (*domain.Item, error) {
	return s.find(ctx, userID, id)
}

// CreateTask stores a new item. Unlike UpdateTask it accepts isComplete=true
// without a completion date.
func (s *Service) CreateTask(ctx context.Context, userID string, req domain.CreateRequest) (*domain.Item, error) {
	if isBlank(req.Title) {
		return nil, ErrTitleEmpty
	}
	if isBlank(userID) {
		return nil, ErrUserIDEmpty
	}

	item := &domain.Item{
		Title:      req.Title,
		IsComplete: req.IsComplete,
		CompleteBy: req.CompleteBy,
		UserID:     userID,
	}

	if err := ctx.Err(); err != nil {
		return nil, internalError("failed to create todo", err)
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return nil, internalError("failed to create todo", err)
	}

	s.notifier.Created(ctx, *item)
	return item, nil
}

// UpdateTask merges req into the stored item. The item must exist before the
// request is validated.
func (s *Service) UpdateTask(ctx context.Context, userID string, id int64, req domain.UpdateRequest) (*domain.Item, error) {
	item, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title.IsPresent() {
		// explicit null counts as blank: a title cannot be cleared
		if title, _ := req.Title.Get(); isBlank(title) {
			return nil, ErrTitleEmpty
		}
	}
	if isBlank(userID) {
		return nil, ErrUserIDEmpty
	}
	completedOn, hasCompletedOn := req.CompletedOn.Get()
	if completing, ok := req.IsComplete.Get(); ok && completing && !hasCompletedOn {
		return nil, ErrCompletedOnRequired
	}

	wasComplete := item.IsComplete

	if title, ok := req.Title.Get(); ok {
		item.Title = title
	}
	if isComplete, ok := req.IsComplete.Get(); ok {
		item.IsComplete = isComplete
	}
	if completeBy, ok := req.CompleteBy.Get(); ok {
		item.CompleteBy = &completeBy
	} else if req.CompleteBy.IsNull() {
		item.CompleteBy = nil
	}

	switch {
	case !item.IsComplete:
		item.CompletedOn = nil
	case hasCompletedOn:
		item.CompletedOn = &completedOn
	}

	if err := ctx.Err(); err != nil {
		return nil, internalError("failed to update todo", err)
	}
	if err := s.store.Save(ctx, item); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalError("failed to update todo", err)
	}

	switch {
	case !wasComplete && item.IsComplete:
		s.notifier.Completed(ctx, *item)
	case wasComplete && !item.IsComplete:
		s.notifier.Reopened(ctx, *item)
	}
	return item, nil
}

// DeleteTask removes one of the user's items. Deleting twice reports ErrNotFound.
func (s *Service) DeleteTask(ctx context.Context, userID string, id int64) error {
	if _, err := s.find(ctx, userID, id); err != nil {
		return err
	}
	if isBlank(userID) {
		return ErrUserIDEmpty
	}

	if err := ctx.Err(); err != nil {
		return internalError("failed to delete todo", err)
	}
	if err := s.store.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return internalError("failed to delete todo", err)
	}

	s.notifier.Deleted(ctx, userID, id)
	return nil
}

func (s *Service) find(ctx context.Context, userID string, id int64) (*domain.Item, error) {
	item, err := s.store.Find(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalError("failed to get todo", err)
	}
	return item, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
