// Package session issues and verifies the signed, self-contained credential
// that authorizes requests. Tokens are not persisted; possession of a valid,
// unexpired token is the whole check, and there is no revocation.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers missing, malformed, badly-signed and expired tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Issue signs a token binding accountID with an absolute expiry ttl from now.
// The signing secret is always passed in explicitly, never ambient.
func Issue(secret []byte, accountID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks the signature and expiry and returns the embedded account id.
// There is no refresh or rotation on verify.
func Verify(secret []byte, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
