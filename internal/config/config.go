// Package config loads application configuration.  Values come from, in
// increasing priority: built-in defaults, an optional YAML file named by
// BMI_CONFIG_FILE, and environment variables (a local .env file is read
// first when present).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.
type Config struct {
	Env              string        // application environment (dev, prod)
	Port             string        // HTTP port to listen on
	LogLevel         string        // debug | info | warn | error
	LogFormat        string        // text | json
	CORSAllowOrigins []string      // origins allowed by the CORS middleware
	ShutdownTimeout  time.Duration // grace period for in-flight requests
	ConfigFile       string        // optional YAML file; watched for log level changes
	Cache            CacheConfig
	Redis            RedisConfig
}

func defaults() Config {
	return Config{
		Env:              "dev",
		Port:             "8080",
		LogLevel:         "info",
		LogFormat:        "text",
		CORSAllowOrigins: []string{"*"},
		ShutdownTimeout:  10 * time.Second,
		Cache:            defaultCacheConfig(),
	}
}

// Load builds the Config.  A missing .env file is not an error; an
// unreadable or invalid YAML file, or invalid final values, are.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaults()
	cfg.ConfigFile = envStr("BMI_CONFIG_FILE", "")
	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg = fc.apply(cfg)
	}

	cfg.Env = envStr("APP_ENV", cfg.Env)
	cfg.Port = envStr("APP_PORT", cfg.Port)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envStr("LOG_FORMAT", cfg.LogFormat)
	cfg.CORSAllowOrigins = envList("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)
	cfg.ShutdownTimeout = envDur("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.Cache = applyCacheEnv(cfg.Cache)
	cfg.Redis = loadRedisConfig()

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return c.Cache.validate()
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}
