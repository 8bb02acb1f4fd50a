package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TROUBLESHOOT_"

// Config holds process settings. Precedence: flags > environment > .env file > defaults.
type Config struct {
	Addr       string        // HTTP listen address
	LogLevel   string        // debug, info, warn, error
	LogFormat  string        // text or json
	Catalog    string        // directory of tree documents; empty means builtin
	Loam       bool          // read Catalog as a Loam markdown repository
	RedisURL   string        // redis:// URL; empty means in-memory sessions
	SessionTTL time.Duration // session expiry in Redis; 0 keeps sessions forever
	CORSOrigin string        // Access-Control-Allow-Origin value
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:       ":8080",
		LogLevel:   "info",
		LogFormat:  "text",
		SessionTTL: 24 * time.Hour,
		CORSOrigin: "*",
	}
}

// Load reads envFile (if non-empty it must exist; otherwise ".env" is tried
// and may be missing) and applies TROUBLESHOOT_* variables over the defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	cfg.Addr = getString("ADDR", cfg.Addr)
	cfg.LogLevel = getString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getString("LOG_FORMAT", cfg.LogFormat)
	cfg.Catalog = getString("CATALOG", cfg.Catalog)
	cfg.RedisURL = getString("REDIS_URL", cfg.RedisURL)
	cfg.CORSOrigin = getString("CORS_ORIGIN", cfg.CORSOrigin)

	var err error
	if cfg.Loam, err = getBool("LOAM", cfg.Loam); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return d, nil
}
