package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrEmailTaken is returned when an account with the same email exists.
	ErrEmailTaken = errors.New("email already in use")
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
)

const uniqueViolation = "23505"

// Repository persists accounts. Every mutation touches exactly one row, so
// the store's per-row atomicity is the only write guarantee required.
type Repository interface {
	Create(ctx context.Context, acct Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id string) (Account, error)
	// SetResetCode stores a pending reset code, replacing any prior one.
	SetResetCode(ctx context.Context, id, code string, expires time.Time) error
	// UpdatePassword swaps the password hash and clears any pending reset
	// code in the same single-row write.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. Two concurrent inserts racing on the same
// email are serialized by the unique index on lower(email); the loser
// observes ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, acct Account) error {
	_, err := r.db.Exec(ctx, `INSERT INTO accounts (id, first_name, last_name, email, mobile, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		acct.ID, acct.FirstName, acct.LastName, acct.Email, acct.Mobile, acct.PasswordHash,
		acct.CreatedAt.UTC(), acct.UpdatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByEmail fetches an account by its normalized email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx, selectColumns+` WHERE lower(email) = lower($1)`, email)
	return scanAccount(row)
}

// FindByID fetches an account by its identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Account, error) {
	row := r.db.QueryRow(ctx, selectColumns+` WHERE id = $1`, id)
	return scanAccount(row)
}

// SetResetCode overwrites the pending reset code and its expiry.
func (r *PostgresRepository) SetResetCode(ctx context.Context, id, code string, expires time.Time) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET reset_code = $1, reset_code_expires = $2, updated_at = now() WHERE id = $3`,
		code, expires.UTC(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword stores the new hash and clears the reset fields atomically.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET password_hash = $1, reset_code = NULL, reset_code_expires = NULL, updated_at = now() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const selectColumns = `SELECT id, first_name, last_name, email, mobile, password_hash, reset_code, reset_code_expires, created_at, updated_at FROM accounts`

func scanAccount(row pgx.Row) (Account, error) {
	var (
		acct    Account
		code    *string
		expires *time.Time
	)
	err := row.Scan(&acct.ID, &acct.FirstName, &acct.LastName, &acct.Email, &acct.Mobile,
		&acct.PasswordHash, &code, &expires, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	if code != nil {
		acct.ResetCode = *code
	}
	if expires != nil {
		acct.ResetCodeExpires = expires.UTC()
	}
	acct.CreatedAt = acct.CreatedAt.UTC()
	acct.UpdatedAt = acct.UpdatedAt.UTC()
	return acct, nil
}
