package dialogue

import (
	"os"
	"strconv"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/chat"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint"
)

// Config bounds the history windows read per turn.
type Config struct {
	// ChatHistoryLimit is how many chat entries the classifier sees.
	ChatHistoryLimit int
	// ComplaintHistoryLimit is how many complaints the follow-up call sees.
	ComplaintHistoryLimit int
}

func DefaultConfig() Config {
	return Config{
		ChatHistoryLimit:      chat.DefaultHistoryLimit,
		ComplaintHistoryLimit: complaint.DefaultHistoryLimit,
	}
}

// ConfigFromEnv reads CHAT_HISTORY_LIMIT and COMPLAINT_HISTORY_LIMIT.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if n, err := strconv.Atoi(os.Getenv("CHAT_HISTORY_LIMIT")); err == nil && n > 0 {
		cfg.ChatHistoryLimit = n
	}
	if n, err := strconv.Atoi(os.Getenv("COMPLAINT_HISTORY_LIMIT")); err == nil && n > 0 {
		cfg.ComplaintHistoryLimit = n
	}
	return cfg
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ChatHistoryLimit <= 0 {
		c.ChatHistoryLimit = d.ChatHistoryLimit
	}
	if c.ComplaintHistoryLimit <= 0 {
		c.ComplaintHistoryLimit = d.ComplaintHistoryLimit
	}
	return c
}
