package whatsapp

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config configures the Graph API gateway and the webhook verifier.
type Config struct {
	// APIURL is the full messages endpoint, e.g.
	// https://graph.facebook.com/v22.0/<phone-number-id>/messages.
	APIURL      string
	Token       string
	VerifyToken string
	Timeout     time.Duration
}

// ConfigFromEnv reads WHATSAPP_* variables.
func ConfigFromEnv() Config {
	timeout := 15 * time.Second
	if s := strings.TrimSpace(os.Getenv("WHATSAPP_TIMEOUT_SECONDS")); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	return Config{
		APIURL:      strings.TrimSpace(os.Getenv("WHATSAPP_API_URL")),
		Token:       strings.TrimSpace(os.Getenv("WHATSAPP_TOKEN")),
		VerifyToken: os.Getenv("WHATSAPP_VERIFY_TOKEN"),
		Timeout:     timeout,
	}
}

// DedupeConfig configures redelivery suppression. An empty Addr disables it.
type DedupeConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func DedupeConfigFromEnv() DedupeConfig {
	cfg := DedupeConfig{
		Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      24 * time.Hour,
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil && n >= 0 {
		cfg.DB = n
	}
	if n, err := strconv.Atoi(os.Getenv("DEDUPE_TTL_SECONDS")); err == nil && n > 0 {
		cfg.TTL = time.Duration(n) * time.Second
	}
	return cfg
}
