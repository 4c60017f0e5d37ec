package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration, read once at startup and
// passed explicitly so tests can substitute values without touching
// process state.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CalendlyToken   string
	CalendlyBaseURL string
	HTTPTimeout     time.Duration
	StaticTokens    []string
	JWTSecret       string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CalendlyToken:   getEnv("CALENDLY_TOKEN", ""),
		CalendlyBaseURL: getEnv("CALENDLY_BASE_URL", ""),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 10*time.Second),
		StaticTokens:    getEnvAsList("STATIC_TOKENS"),
		JWTSecret:       getEnv("JWT_HMAC_SECRET", ""),
	}
}

// InboundAuthEnabled reports whether the API should require bearer
// tokens from its own callers.
func (c *Config) InboundAuthEnabled() bool {
	return len(c.StaticTokens) > 0 || c.JWTSecret != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
