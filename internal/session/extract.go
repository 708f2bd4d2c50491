package session

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// extractor pulls a candidate token from a request; empty means absent.
type extractor func(*fiber.Ctx) string

// The cookie is preferred and the bearer header is the fallback: third-party
// cookies are unreliable across some browser/origin combinations, so clients
// that cannot rely on them resend the token from the login response body.
var extractors = []extractor{fromCookie, fromBearer}

// FromRequest returns the first token found by the ordered extractors.
func FromRequest(c *fiber.Ctx) string {
	for _, extract := range extractors {
		if token := extract(c); token != "" {
			return token
		}
	}
	return ""
}

func fromCookie(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}

func fromBearer(c *fiber.Ctx) string {
	const prefix = "Bearer "
	authz := c.Get(fiber.HeaderAuthorization)
	if len(authz) > len(prefix) && strings.EqualFold(authz[:len(prefix)], prefix) {
		return strings.TrimSpace(authz[len(prefix):])
	}
	return ""
}
