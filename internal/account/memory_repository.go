package account

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by lowercased email
}

// NewMemoryRepository builds an in-memory account store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, acct Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(acct.Email)
	if _, exists := r.accounts[key]; exists {
		return ErrEmailTaken
	}
	r.accounts[key] = acct
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.accounts[strings.ToLower(email)]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, acct := range r.accounts {
		if acct.ID == id {
			return acct, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *memoryRepository) SetResetCode(_ context.Context, id, code string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, acct := range r.accounts {
		if acct.ID == id {
			acct.ResetCode = code
			acct.ResetCodeExpires = expires
			acct.UpdatedAt = time.Now().UTC()
			r.accounts[key] = acct
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, acct := range r.accounts {
		if acct.ID == id {
			acct.PasswordHash = passwordHash
			acct.ResetCode = ""
			acct.ResetCodeExpires = time.Time{}
			acct.UpdatedAt = time.Now().UTC()
			r.accounts[key] = acct
			return nil
		}
	}
	return ErrNotFound
}
