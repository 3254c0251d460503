package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config carries every knob the client reads from the environment.
type Config struct {
	// APIBaseURL is the REST API root, including the /api prefix.
	APIBaseURL string
	// WSBaseURL is the websocket root (ws:// or wss://).
	WSBaseURL string
	// SessionFile is where the authenticated session record is persisted.
	SessionFile string

	// ChatPollInterval drives private-chat polling.
	ChatPollInterval time.Duration
	// InboxPollInterval drives conversation-list polling.
	InboxPollInterval time.Duration

	// DebugAddr enables the local metrics/debug listener when non-empty.
	DebugAddr string
	// OTLPEndpoint enables trace export when non-empty.
	OTLPEndpoint string
	Environment  string

	// RequestsPerSecond caps outgoing API calls. Zero disables the limiter.
	RequestsPerSecond float64
}

// Load reads the configuration from the environment, applying defaults
// that match a local PourPal backend.
func Load() Config {
	return Config{
		APIBaseURL:        getEnv("POURPAL_API_URL", "http://localhost:8000/api"),
		WSBaseURL:         getEnv("POURPAL_WS_URL", "ws://localhost:8000"),
		SessionFile:       getEnv("POURPAL_SESSION_FILE", defaultSessionFile()),
		ChatPollInterval:  getDuration("POURPAL_CHAT_POLL_MS", 3000),
		InboxPollInterval: getDuration("POURPAL_INBOX_POLL_MS", 5000),
		DebugAddr:         getEnv("POURPAL_DEBUG_ADDR", ""),
		OTLPEndpoint:      getEnv("POURPAL_OTLP_ENDPOINT", ""),
		Environment:       getEnv("POURPAL_ENV", "development"),
		RequestsPerSecond: getFloat("POURPAL_API_RPS", 0),
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pourpal-session.json"
	}
	return filepath.Join(home, ".pourpal", "session.json")
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getDuration(key string, fallbackMillis int) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallbackMillis) * time.Millisecond
}

func getFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}
