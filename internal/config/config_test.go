package config

import "testing"

func TestParseOrigins(t *testing.T) {
	hosts, err := ParseOrigins("https://app.example.com/, example.com,https://other.io:3000")
	if err != nil {
		t.Fatalf("parse origins: %v", err)
	}
	want := []string{"app.example.com", "example.com", "other.io"}
	if len(hosts) != len(want) {
		t.Fatalf("expected %d hosts, got %d (%v)", len(want), len(hosts), hosts)
	}
	for i, h := range want {
		if hosts[i] != h {
			t.Fatalf("host %d: expected %q got %q", i, h, hosts[i])
		}
	}
}

func TestParseOriginsEmpty(t *testing.T) {
	hosts, err := ParseOrigins("")
	if err != nil {
		t.Fatalf("parse origins: %v", err)
	}
	if len(hosts) != 0 {
		t.Fatalf("expected no hosts, got %v", hosts)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/auth")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env should not be production, got %q", cfg.AppEnv)
	}
	if cfg.TokenTTL.Hours() != 7*24 {
		t.Fatalf("expected 7 day token TTL, got %s", cfg.TokenTTL)
	}
}
