package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	JWTSecret           string
	TokenTTL            time.Duration
	SearchLimit         int
	WorkerPoolSize      int
	FeedRefreshInterval time.Duration
	CheckoutSessionTTL  time.Duration
	ShutdownTimeout     time.Duration
	DefaultDeliveryTime string
	LogLevel            string
	PasswordCost        int
}

const (
	defaultRunAddress          = ":8080"
	defaultJWTSecret           = "change-me-in-production"
	defaultTokenTTL            = 24 * time.Hour
	defaultSearchLimit         = 50
	defaultWorkerPoolSize      = 4
	defaultFeedRefreshInterval = 30 * time.Second
	defaultCheckoutSessionTTL  = 30 * time.Minute
	defaultShutdownTimeout     = 10 * time.Second
	defaultDeliveryTime        = "30-45 min"
	defaultLogLevel            = "info"
	defaultPasswordCost        = 10
	defaultEnvFile             = ".env"
)

// UsesDefaultJWTSecret reports whether tokens are signed with the built-in
// development secret.
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// Load parses configuration from an optional .env file, flags and environment variables.
func Load() (*Config, error) {
	if err := loadEnvFile(defaultEnvFile); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// loadEnvFile populates unset environment variables from path. A missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:            getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		SearchLimit:         getInt(lookup, "SEARCH_LIMIT", defaultSearchLimit),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		FeedRefreshInterval: getDuration(lookup, "FEED_REFRESH_INTERVAL", defaultFeedRefreshInterval),
		CheckoutSessionTTL:  getDuration(lookup, "CHECKOUT_SESSION_TTL", defaultCheckoutSessionTTL),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		DefaultDeliveryTime: getString(lookup, "DEFAULT_DELIVERY_TIME", defaultDeliveryTime),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PasswordCost:        getInt(lookup, "PASSWORD_COST", defaultPasswordCost),
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	fs := flag.NewFlagSet("foodcourier", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		refreshStr         = cfg.FeedRefreshInterval.String()
		sessionTTLStr      = cfg.CheckoutSessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.IntVar(&cfg.SearchLimit, "search-limit", cfg.SearchLimit, "Maximum rows fetched per search query")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent feed workers")
	fs.StringVar(&refreshStr, "feed-refresh", refreshStr, "Interval between full delivery feed refreshes")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Idle lifetime of checkout sessions")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.DefaultDeliveryTime, "delivery-time", cfg.DefaultDeliveryTime, "Fallback estimated delivery time")
	fs.IntVar(&cfg.PasswordCost, "password-cost", cfg.PasswordCost, "bcrypt cost for password hashes")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.FeedRefreshInterval, err = time.ParseDuration(refreshStr); err != nil {
		return nil, fmt.Errorf("invalid feed refresh interval: %w", err)
	}

	if cfg.CheckoutSessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.PasswordCost <= 0 {
		cfg.PasswordCost = defaultPasswordCost
	}

	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.FeedRefreshInterval <= 0 {
		cfg.FeedRefreshInterval = defaultFeedRefreshInterval
	}

	if cfg.CheckoutSessionTTL <= 0 {
		cfg.CheckoutSessionTTL = defaultCheckoutSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if strings.TrimSpace(cfg.DefaultDeliveryTime) == "" {
		cfg.DefaultDeliveryTime = defaultDeliveryTime
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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
