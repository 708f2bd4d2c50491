package session

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// IsSecure reports whether the connection counts as secure: direct TLS, an
// HTTPS-terminating proxy in front, or a production deployment.
func IsSecure(c *fiber.Ctx, production bool) bool {
	if production || c.Protocol() == "https" {
		return true
	}
	return strings.EqualFold(c.Get(fiber.HeaderXForwardedProto), "https")
}

// SetCookie attaches the session token as an HTTP-only cookie. Secure
// connections get SameSite=None so the cookie flows between the distinct
// front-end and back-end origins; plain HTTP falls back to Lax.
func SetCookie(c *fiber.Ctx, token string, ttl time.Duration, production bool) {
	c.Cookie(newCookie(c, token, int(ttl.Seconds()), time.Now().Add(ttl), production))
}

// ClearCookie expires the session cookie. The attribute set must match the
// one used at issuance exactly; browsers silently ignore a clear with
// mismatched attributes.
func ClearCookie(c *fiber.Ctx, production bool) {
	c.Cookie(newCookie(c, "", -1, time.Unix(0, 0), production))
}

func newCookie(c *fiber.Ctx, value string, maxAge int, expires time.Time, production bool) *fiber.Cookie {
	secure := IsSecure(c, production)
	sameSite := fiber.CookieSameSiteLaxMode
	if secure {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}
