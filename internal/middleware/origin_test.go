package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newOriginApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Use(OriginGuard(allowed))
	app.Get("/resource", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestOriginGuardNoOriginAllowed(t *testing.T) {
	app := newOriginApp("example.com")

	req := httptest.NewRequest(fiber.MethodGet, "/resource", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for request without origin, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("expected no CORS headers without origin, got %q", got)
	}
}

func TestOriginGuardAllowsSubdomain(t *testing.T) {
	for _, allowed := range []string{"example.com", "app.example.com"} {
		app := newOriginApp(allowed)

		req := httptest.NewRequest(fiber.MethodGet, "/resource", nil)
		req.Header.Set(fiber.HeaderOrigin, "https://app.example.com")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("allow-list %q: expected 200, got %d", allowed, resp.StatusCode)
		}
		if got := resp.Header.Get(fiber.HeaderAccessControlAllowOrigin); got != "https://app.example.com" {
			t.Fatalf("allow-list %q: expected reflected origin, got %q", allowed, got)
		}
		if got := resp.Header.Get(fiber.HeaderAccessControlAllowCredentials); got != "true" {
			t.Fatalf("allow-list %q: expected credentials allowed, got %q", allowed, got)
		}
	}
}

func TestOriginGuardNeverReflectsWildcard(t *testing.T) {
	app := newOriginApp("example.com")

	req := httptest.NewRequest(fiber.MethodGet, "/resource", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://example.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get(fiber.HeaderAccessControlAllowOrigin); got == "*" {
		t.Fatal("wildcard origin must never be emitted alongside credentials")
	}
}

func TestOriginGuardRejectsSuffixTrick(t *testing.T) {
	app := newOriginApp("example.com")

	// Contains an allowed hostname as a substring but is a different domain.
	req := httptest.NewRequest(fiber.MethodGet, "/resource", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://evilapp.example.com.attacker.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("rejection must not carry CORS headers, got %q", got)
	}
}

func TestOriginGuardRejectsUnknownOrigin(t *testing.T) {
	app := newOriginApp("example.com")

	req := httptest.NewRequest(fiber.MethodGet, "/resource", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://not-example.org")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestOriginGuardPreflight(t *testing.T) {
	app := newOriginApp("example.com")

	req := httptest.NewRequest(fiber.MethodOptions, "/resource", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://app.example.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPost)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderAccessControlAllowMethods); got == "" {
		t.Fatal("preflight response missing allow-methods header")
	}
}
