package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func runExtract(t *testing.T, cookie, bearer string) string {
	t.Helper()
	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = FromRequest(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}

	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return got
}

func TestFromRequestCookieWins(t *testing.T) {
	if got := runExtract(t, "cookie-token", "header-token"); got != "cookie-token" {
		t.Fatalf("expected cookie token to win, got %q", got)
	}
}

func TestFromRequestBearerFallback(t *testing.T) {
	if got := runExtract(t, "", "header-token"); got != "header-token" {
		t.Fatalf("expected bearer fallback, got %q", got)
	}
}

func TestFromRequestAbsent(t *testing.T) {
	if got := runExtract(t, "", ""); got != "" {
		t.Fatalf("expected no token, got %q", got)
	}
}
