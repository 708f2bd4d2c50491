package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultAppName      = "Gatehouse"
	defaultAppEnv       = "development"
	defaultPort         = "5000"
	defaultLogLevel     = "info"
	defaultTokenTTL     = 7 * 24 * time.Hour
	defaultResetCodeTTL = 15 * time.Minute
	defaultShutdown     = 10 * time.Second
	defaultIdemTTL      = 24 * time.Hour
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	AllowedOrigins []string
	TokenTTL       time.Duration
	ResetCodeTTL   time.Duration
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
}

// Load reads configuration values from the environment and populates a Config
// instance. It fails when the database URL or the signing secret is absent;
// the process must not serve requests without either.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       defaultTokenTTL,
		ResetCodeTTL:   defaultResetCodeTTL,
		ShutdownPeriod: defaultShutdown,
		IdempotencyTTL: defaultIdemTTL,
	}

	for _, opt := range []struct {
		env string
		dst *time.Duration
	}{
		{"TOKEN_TTL", &cfg.TokenTTL},
		{"RESET_CODE_TTL", &cfg.ResetCodeTTL},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownPeriod},
		{"IDEMPOTENCY_TTL", &cfg.IdempotencyTTL},
	} {
		if v := os.Getenv(opt.env); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", opt.env, err)
			}
			*opt.dst = d
		}
	}

	origins, err := ParseOrigins(os.Getenv("ALLOWED_ORIGINS"))
	if err != nil {
		return Config{}, err
	}
	cfg.AllowedOrigins = origins

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

// ParseOrigins normalizes a comma-separated allow-list into bare hostnames.
// Entries may be full URLs ("https://app.example.com/") or plain hosts
// ("example.com"); schemes, ports and trailing slashes are stripped.
func ParseOrigins(raw string) ([]string, error) {
	var hosts []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		host := strings.TrimSuffix(entry, "/")
		if strings.Contains(entry, "://") {
			u, err := url.Parse(entry)
			if err != nil || u.Hostname() == "" {
				return nil, fmt.Errorf("invalid origin %q in ALLOWED_ORIGINS", entry)
			}
			host = u.Hostname()
		}
		hosts = append(hosts, strings.ToLower(host))
	}
	return hosts, nil
}

// IsProduction reports whether the app runs with the production cookie policy.
func (c Config) IsProduction() bool {
	switch c.AppEnv {
	case "production", "prod":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
