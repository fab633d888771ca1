package todo

import (
	"errors"
)

// Kind classifies a Service failure.
type Kind string

const (
	// KindNotFound covers items that do not exist and items owned by someone else.
	KindNotFound Kind = "not_found"
	// KindInvalidArgument is a request validation failure.
	KindInvalidArgument Kind = "invalid_argument"
	// KindInternal is an unexpected store failure.
	KindInternal Kind = "internal"
)

// Error is the typed outcome returned by Service operations.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind and code so a reconstructed error still equals its sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

var (
	// ErrNotFound is returned when no item matches both id and owner.
	ErrNotFound = &Error{Kind: KindNotFound, Code: "not_found", Message: "Todo item not found."}
	// ErrTitleEmpty is returned for a blank title.
	ErrTitleEmpty = &Error{Kind: KindInvalidArgument, Code: "title_empty", Message: "Request title cannot be null or empty."}
	// ErrUserIDEmpty is returned when the caller identity is blank.
	ErrUserIDEmpty = &Error{Kind: KindInvalidArgument, Code: "user_id_empty", Message: "User ID cannot be null or empty."}
	// ErrCompletedOnRequired is returned when completing an item without a completion date.
	ErrCompletedOnRequired = &Error{Kind: KindInvalidArgument, Code: "completed_on_required", Message: "CompletedOn date must be provided when marking a todo as complete."}
)

var sentinels = []*Error{ErrNotFound, ErrTitleEmpty, ErrUserIDEmpty, ErrCompletedOnRequired}

func internalError(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal", Message: message, Err: err}
}

// KindOf returns the Kind of err, treating anything untyped as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
