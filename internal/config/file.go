package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the optional YAML configuration file.  Zero values
// leave the corresponding default untouched.
//
//	server:
//	  env: prod
//	  port: 8080
//	  cors_allow_origins: ["*"]
//	  shutdown_timeout: 10s
//	log:
//	  level: info
//	  format: json
//	cache:
//	  enabled: true
//	  ttl: 5m
//	  prefix: bmi
type FileConfig struct {
	Server ServerSection `yaml:"server"`
	Log    LogSection    `yaml:"log"`
	Cache  CacheSection  `yaml:"cache"`
}

// ServerSection holds HTTP server settings.
type ServerSection struct {
	Env              string        `yaml:"env"`
	Port             int           `yaml:"port"`
	CORSAllowOrigins []string      `yaml:"cors_allow_origins"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
}

// LogSection holds logger settings.  Level is re-read on file changes.
type LogSection struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CacheSection holds response cache settings.  Enabled is a pointer so the
// file can turn the cache off explicitly.
type CacheSection struct {
	Enabled *bool         `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Prefix  string        `yaml:"prefix"`
}

// LoadFile reads and parses the YAML config file at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if fc.Log.Level != "" {
		if _, err := ParseLevel(fc.Log.Level); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return &fc, nil
}

func (fc *FileConfig) apply(c Config) Config {
	if fc.Server.Env != "" {
		c.Env = fc.Server.Env
	}
	if fc.Server.Port != 0 {
		c.Port = fmt.Sprint(fc.Server.Port)
	}
	if len(fc.Server.CORSAllowOrigins) > 0 {
		c.CORSAllowOrigins = fc.Server.CORSAllowOrigins
	}
	if fc.Server.ShutdownTimeout > 0 {
		c.ShutdownTimeout = fc.Server.ShutdownTimeout
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.LogFormat = fc.Log.Format
	}
	if fc.Cache.Enabled != nil {
		c.Cache.Enabled = *fc.Cache.Enabled
	}
	if fc.Cache.TTL > 0 {
		c.Cache.TTL = fc.Cache.TTL
	}
	if fc.Cache.Prefix != "" {
		c.Cache.Prefix = fc.Cache.Prefix
	}
	return c
}
