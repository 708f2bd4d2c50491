// Package auth exposes the HTTP surface of the authentication service: the
// signup/login/me/logout endpoints and the password-reset flow.
package auth

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gatehouse/gatehouse/internal/account"
	"github.com/gatehouse/gatehouse/internal/config"
	"github.com/gatehouse/gatehouse/internal/middleware"
	"github.com/gatehouse/gatehouse/internal/notification"
	"github.com/gatehouse/gatehouse/internal/session"
)

// Handler binds the account service to the REST endpoints.
type Handler struct {
	accounts *account.Service
	notifier notification.Notifier
	cfg      config.Config
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(accounts *account.Service, notifier notification.Notifier, cfg config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		validate: newValidator(),
	}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	LastName string `json:"lastName"`
	Mobile   string `json:"mobile" validate:"omitempty,len=10,numeric"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Token    string `json:"token,omitempty"`
}

func toResponse(acct account.Account, token string) accountResponse {
	return accountResponse{
		ID:       acct.ID,
		Name:     acct.FirstName,
		LastName: acct.LastName,
		Email:    acct.Email,
		Mobile:   acct.Mobile,
		Token:    token,
	}
}

// Signup registers a new account and starts a session.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "All fields are required")
	}
	if err := h.validate.Struct(req); err != nil {
		return signupValidationError(err)
	}

	acct, err := h.accounts.Register(c.UserContext(), account.SignupInput{
		FirstName: req.Name,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusConflict, "Email already in use")
		}
		return err
	}

	token, err := session.Issue([]byte(h.cfg.JWTSecret), acct.ID, h.cfg.TokenTTL)
	if err != nil {
		return err
	}
	session.SetCookie(c, token, h.cfg.TokenTTL, h.cfg.IsProduction())

	return c.Status(fiber.StatusCreated).JSON(toResponse(acct, token))
}

// signupValidationError translates validator failures into the messages the
// signup endpoint has always returned.
func signupValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "mobile" {
				return fiber.NewError(fiber.StatusBadRequest, "Mobile number must be exactly 10 digits")
			}
		}
	}
	return fiber.NewError(fiber.StatusBadRequest, "All fields are required")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and starts a session.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password required")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password required")
	}

	acct, err := h.accounts.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	token, err := session.Issue([]byte(h.cfg.JWTSecret), acct.ID, h.cfg.TokenTTL)
	if err != nil {
		return err
	}
	session.SetCookie(c, token, h.cfg.TokenTTL, h.cfg.IsProduction())

	return c.JSON(toResponse(acct, token))
}

// Me returns the account bound to the verified session token.
func (h *Handler) Me(c *fiber.Ctx) error {
	acct, err := h.accounts.Get(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(toResponse(acct, ""))
}

// Logout clears the session cookie. The cookie attributes are recomputed the
// same way as at issuance so the browser actually drops it.
func (h *Handler) Logout(c *fiber.Ctx) error {
	session.ClearCookie(c, h.cfg.IsProduction())
	return c.JSON(fiber.Map{"message": "Logged out"})
}

type forgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Forgot issues a one-time reset code for the account. The code is returned
// in the response for the accompanying UI and handed to the notifier, which
// is where a real out-of-band delivery channel plugs in.
func (h *Handler) Forgot(c *fiber.Ctx) error {
	var req forgotRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required")
	}

	code, err := h.accounts.RequestReset(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if err := h.notifier.Send(c.UserContext(), notification.Message{
		Kind:        notification.KindPasswordReset,
		Destination: account.NormalizeEmail(req.Email),
		Body:        code,
	}); err != nil {
		h.logger.Warn("reset code notification failed", slog.Any("error", err))
	}

	return c.JSON(fiber.Map{"message": "Reset code issued", "code": code})
}

type resetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Reset consumes a pending code and rotates the password.
func (h *Handler) Reset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "All fields are required")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "All fields are required")
	}

	err := h.accounts.PerformReset(c.UserContext(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		case errors.Is(err, account.ErrResetInvalid):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired code")
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}
