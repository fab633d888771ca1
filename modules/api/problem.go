package api

import (
	"errors"
	"log"

	"github.com/example/todo-app/modules/todo"
	"github.com/gofiber/fiber/v2"
)

const problemContentType = "application/problem+json"

var problemTypes = map[int]string{
	fiber.StatusBadRequest:          "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	fiber.StatusUnauthorized:        "https://tools.ietf.org/html/rfc9110#section-15.5.2",
	fiber.StatusNotFound:            "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	fiber.StatusMethodNotAllowed:    "https://tools.ietf.org/html/rfc9110#section-15.5.6",
	fiber.StatusUnprocessableEntity: "https://tools.ietf.org/html/rfc9110#section-15.5.21",
	fiber.StatusInternalServerError: "https://tools.ietf.org/html/rfc9110#section-15.6.1",
}

func problemType(status int) string {
	if t, ok := problemTypes[status]; ok {
		return t
	}
	return "about:blank"
}

func sendProblem(c *fiber.Ctx, p ProblemDetails) error {
	p.Type = problemType(p.Status)
	return c.Status(p.Status).JSON(p, problemContentType)
}

// sendServiceError maps a to-do service outcome onto a problem response.
// Internal failures are logged; their message is returned as detail.
func sendServiceError(c *fiber.Ctx, err error) error {
	var e *todo.Error
	errors.As(err, &e)

	switch todo.KindOf(err) {
	case todo.KindNotFound:
		return sendProblem(c, ProblemDetails{
			Title:  e.Message,
			Status: fiber.StatusNotFound,
			Code:   e.Code,
		})
	case todo.KindInvalidArgument:
		return sendProblem(c, ProblemDetails{
			Title:  e.Message,
			Status: fiber.StatusBadRequest,
			Code:   e.Code,
		})
	default:
		log.Printf("[api] Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return sendProblem(c, ProblemDetails{
			Title:  "An unexpected error occurred.",
			Status: fiber.StatusInternalServerError,
			Detail: err.Error(),
		})
	}
}

// customErrorHandler renders errors that escape handlers, such as unmatched
// routes, as problem documents.
func customErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return sendProblem(c, ProblemDetails{
			Title:  fe.Message,
			Status: fe.Code,
		})
	}
	return sendServiceError(c, err)
}
