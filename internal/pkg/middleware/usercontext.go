package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/internal/pkg/session"
	"github.com/presswire/PressWire/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a UserContext and stores it
// in Locals for controllers and permission guards downstream.
func UserContextMiddleware(c *fiber.Ctx) error {
	ctx := usercontext.UserContext{}

	if v := session.GetSessionValue(c, usercontext.KeyUserID); v != nil {
		switch id := v.(type) {
		case uint:
			ctx.UserID = id
		case int:
			ctx.UserID = uint(id)
		case int64:
			ctx.UserID = uint(id)
		case float64:
			ctx.UserID = uint(id)
		}
	}
	if v, ok := session.GetSessionValue(c, usercontext.KeyUsername).(string); ok {
		ctx.Username = v
	}
	if v, ok := session.GetSessionValue(c, usercontext.KeyIsStaff).(bool); ok {
		ctx.IsStaff = v
	}
	ctx.IsLoggedIn = ctx.UserID != 0

	c.Locals(usercontext.ContextLocal, ctx)
	return c.Next()
}
