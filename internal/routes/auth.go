package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatehouse/gatehouse/internal/auth"
)

// RegisterAuthRoutes wires the authentication endpoints under /api/auth.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, requireSession fiber.Handler) {
	grp := r.Group("/auth")

	grp.Post("/signup", h.Signup)
	grp.Post("/login", h.Login)
	grp.Post("/logout", h.Logout)
	grp.Post("/forgot", h.Forgot)
	grp.Post("/reset", h.Reset)

	grp.Get("/me", requireSession, h.Me)
}
