package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatehouse/gatehouse/internal/session"
)

const accountIDKey = "account_id"

// RequireSession verifies the session token (cookie first, bearer header as
// fallback) and stores the authenticated account id in the request locals.
func RequireSession(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := session.Verify(secret, session.FromRequest(c))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		c.Locals(accountIDKey, accountID)
		return c.Next()
	}
}

// AccountID returns the account id stored by RequireSession, or "".
func AccountID(c *fiber.Ctx) string {
	id, _ := c.Locals(accountIDKey).(string)
	return id
}
