package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and
// flags. An empty DatabaseURI selects the in-memory feed (offline demo mode)
// instead of the live Postgres mirror.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	FeedPollInterval time.Duration
	ShutdownTimeout  time.Duration
	AuthSecret       string
	AdminLogin       string
	AdminPassword    string
}

const (
	defaultRunAddress       = ":8080"
	defaultFeedPollInterval = 2 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultAuthSecret       = "change-me-in-production"
	defaultAdminLogin       = "admin"
	defaultAdminPassword    = "admin"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		FeedPollInterval: getDuration(lookup, "FEED_POLL_INTERVAL", defaultFeedPollInterval),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AuthSecret:       getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AdminLogin:       getString(lookup, "ADMIN_LOGIN", defaultAdminLogin),
		AdminPassword:    getString(lookup, "ADMIN_PASSWORD", defaultAdminPassword),
	}

	fs := flag.NewFlagSet("orderadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.FeedPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN of the order mirror (empty for in-memory feed)")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between feed polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AdminLogin, "admin-login", cfg.AdminLogin, "Operator login")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Operator password")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.FeedPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.FeedPollInterval <= 0 {
		cfg.FeedPollInterval = defaultFeedPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.AdminLogin == "" {
		return nil, fmt.Errorf("admin login must not be empty")
	}

	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("admin password must not be empty")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
