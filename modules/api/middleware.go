package api

import (
	"strings"

	"github.com/example/todo-app/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey holds the verified *user.Claims in fiber locals.
const UserContextKey = "user"

const bearerScheme = "Bearer "

// AuthMiddleware admits requests carrying a valid bearer token. Anything else
// is answered with a 401 problem before a handler runs.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "missing_token", "Authorization header is required.")
		}

		token, ok := strings.CutPrefix(header, bearerScheme)
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return unauthorized(c, "malformed_token", "Authorization header must be 'Bearer <token>'.")
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil || claims.UserID == "" {
			return unauthorized(c, "invalid_token", "Token is invalid or expired.")
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, code, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="todo"`)
	return sendProblem(c, ProblemDetails{
		Title:  "Unauthorized",
		Status: fiber.StatusUnauthorized,
		Detail: detail,
		Code:   code,
	})
}
