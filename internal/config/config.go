// Package config reads the client configuration from the environment, with a
// .env file as a convenience for local development.
package config

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultAPIURL      = "http://localhost:8080"
	defaultHTTPTimeout = 10 * time.Second
)

type Config struct {
	// APIURL is the base URL of the TicketNow backend.
	APIURL string
	// HTTPTimeout bounds each API request.
	HTTPTimeout time.Duration
	// StateDir holds the device-local key-value slots (purchase ledger,
	// language).
	StateDir string
	// RedisAddr, when set, switches the store to Redis so several terminals
	// share one history.
	RedisAddr string
	// Language forces a language for this run; empty means use the saved one.
	Language string
}

// Load reads the environment, applying a .env file first and warning about
// every default it falls back to, same register as the server side.
func Load(logger *log.Logger) Config {
	if logger == nil {
		logger = log.Default()
	}
	LoadEnvFile(logger)

	cfg := Config{
		APIURL:      os.Getenv("TICKETNOW_API_URL"),
		HTTPTimeout: defaultHTTPTimeout,
		StateDir:    os.Getenv("TICKETNOW_STATE_DIR"),
		RedisAddr:   os.Getenv("TICKETNOW_REDIS_ADDR"),
		Language:    os.Getenv("TICKETNOW_LANG"),
	}

	if cfg.APIURL == "" {
		logger.Printf("WARN: TICKETNOW_API_URL not set, using default %s", defaultAPIURL)
		cfg.APIURL = defaultAPIURL
	}

	if raw := os.Getenv("TICKETNOW_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			logger.Printf("WARN: invalid TICKETNOW_HTTP_TIMEOUT %q, using default %s", raw, defaultHTTPTimeout)
		} else {
			cfg.HTTPTimeout = d
		}
	}

	if cfg.StateDir == "" {
		cfg.StateDir = defaultStateDir(logger)
	}
	return cfg
}

func defaultStateDir(logger *log.Logger) string {
	base, err := os.UserConfigDir()
	if err != nil {
		logger.Printf("WARN: no user config dir, keeping state in .ticketnow: %v", err)
		return ".ticketnow"
	}
	return filepath.Join(base, "ticketnow")
}
