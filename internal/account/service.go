package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrResetInvalid is returned when a reset code is absent, wrong or
	// expired; the three cases are indistinguishable on purpose.
	ErrResetInvalid = errors.New("invalid or expired reset code")
)

// bcryptCost matches the work factor the accounts were originally hashed with.
const bcryptCost = 10

// Service manages the account lifecycle: signup, login and password reset.
type Service struct {
	repo     Repository
	resetTTL time.Duration
	now      func() time.Time
}

// NewService creates an account service. resetTTL bounds how long a reset
// code stays usable.
func NewService(repo Repository, resetTTL time.Duration) *Service {
	return &Service{repo: repo, resetTTL: resetTTL, now: time.Now}
}

// SignupInput carries the fields accepted at registration. Validation of
// shape (required fields, mobile format) happens at the HTTP boundary; the
// service only normalizes and persists.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    string
	Password  string
}

// NormalizeEmail trims and lowercases an email for case-insensitive matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with a bcrypt-hashed password. It returns
// ErrEmailTaken when the email is already registered, however the race with a
// concurrent signup resolves.
func (s *Service) Register(ctx context.Context, in SignupInput) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	acct := Account{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        NormalizeEmail(in.Email),
		Mobile:       strings.TrimSpace(in.Mobile),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return Account{}, err
	}

	return acct, nil
}

// Authenticate verifies an email/password pair.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	acct, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return acct, nil
}

// Get fetches an account by id.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.FindByID(ctx, id)
}

// RequestReset issues a fresh 6-digit reset code with a bounded lifetime and
// returns it. A second request overwrites the first: last-request-wins.
func (s *Service) RequestReset(ctx context.Context, email string) (string, error) {
	acct, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}

	code, err := generateResetCode()
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}

	if err := s.repo.SetResetCode(ctx, acct.ID, code, s.now().UTC().Add(s.resetTTL)); err != nil {
		return "", err
	}

	return code, nil
}

// PerformReset validates a pending code and rotates the password hash. The
// code and its expiry are cleared in the same write, so a consumed code can
// never validate again.
func (s *Service) PerformReset(ctx context.Context, email, code, newPassword string) error {
	acct, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	// A code is usable only strictly before its expiry.
	if !acct.ResetPending() || acct.ResetCode != code || !s.now().Before(acct.ResetCodeExpires) {
		return ErrResetInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, acct.ID, string(hash))
}

// generateResetCode draws a uniformly random 6-digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
