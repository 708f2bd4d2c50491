package session

import (
	"errors"
	"testing"
	"time"
)

var secret = []byte("test-secret")

func TestIssueVerifyRoundtrip(t *testing.T) {
	token, err := Issue(secret, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sub, err := Verify(secret, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "acct-1" {
		t.Fatalf("expected subject acct-1, got %q", sub)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := Issue(secret, "acct-1", -time.Second)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify(secret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := Issue(secret, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify([]byte("other-secret"), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := Verify(secret, token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
