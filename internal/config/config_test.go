package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bmi.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BMI_CONFIG_FILE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Errorf("cors: got %v", cfg.CORSAllowOrigins)
	}
	if !cfg.Cache.Enabled || !cfg.Cache.Methods["GET"] || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("cache: got %+v", cfg.Cache)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BMI_CONFIG_FILE", "")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("got %+v", cfg)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example" {
		t.Errorf("cors: got %v", cfg.CORSAllowOrigins)
	}
	if cfg.Cache.Enabled || cfg.Cache.TTL != 30*time.Second {
		t.Errorf("cache: got %+v", cfg.Cache)
	}
	if cfg.Redis.Addr != "cache:6380" {
		t.Errorf("redis addr: got %q", cfg.Redis.Addr)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  env: prod
  port: 7000
  shutdown_timeout: 3s
log:
  level: warn
  format: json
cache:
  enabled: false
  prefix: calc
`)
	t.Setenv("BMI_CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "prod" {
		t.Errorf("env: got %q", cfg.Env)
	}
	if cfg.Port != "7001" {
		t.Errorf("env var should win over file, got port %q", cfg.Port)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown timeout: got %v", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != "json" {
		t.Errorf("log: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Cache.Enabled || cfg.Cache.Prefix != "calc" {
		t.Errorf("cache: got %+v", cfg.Cache)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad port":       {"APP_PORT": "http"},
		"port too large": {"APP_PORT": "70000"},
		"bad level":      {"LOG_LEVEL": "loud"},
		"bad format":     {"LOG_FORMAT": "xml"},
		"missing file":   {"BMI_CONFIG_FILE": "/nonexistent/bmi.yaml"},
		"route key":      {"CACHE_KEY_STRATEGY": "route"},
		"method key":     {"CACHE_KEY_STRATEGY": "method_route"},
		"zero ttl":       {"CACHE_TTL": "0s"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("BMI_CONFIG_FILE", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_CacheKeyStrategies(t *testing.T) {
	for _, strategy := range []string{KeyRouteQuery, KeyMethodRouteQuery, "ROUTE_QUERY"} {
		t.Setenv("BMI_CONFIG_FILE", "")
		t.Setenv("CACHE_KEY_STRATEGY", strategy)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		if cfg.Cache.KeyStrategy != strategy {
			t.Errorf("got %q, want %q", cfg.Cache.KeyStrategy, strategy)
		}
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	if _, err := LoadFile(writeFile(t, "server: [unterminated")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFile(writeFile(t, "log:\n  level: shouting\n")); err == nil {
		t.Fatal("expected level error")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "yes")
	t.Setenv("X_INT", "notanint")
	t.Setenv("X_DUR", "250ms")
	t.Setenv("X_LIST", " , ")

	if !envBool("X_BOOL", false) {
		t.Error("envBool")
	}
	if envInt("X_INT", 7) != 7 {
		t.Error("envInt should fall back on parse failure")
	}
	if envDur("X_DUR", 0) != 250*time.Millisecond {
		t.Error("envDur")
	}
	if got := envList("X_LIST", []string{"d"}); len(got) != 1 || got[0] != "d" {
		t.Errorf("envList: got %v", got)
	}
}

// waitForLevel drains changes until one carries level.
func waitForLevel(t *testing.T, changes <-chan *FileConfig, level string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case fc := <-changes:
			if fc.Log.Level == level {
				return
			}
		case <-deadline:
			t.Fatalf("no reload with level %q observed", level)
		}
	}
}

func TestWatch_SurvivesReplacingSaves(t *testing.T) {
	path := writeFile(t, "log:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *FileConfig, 16)
	go func() { _ = Watch(ctx, path, func(fc *FileConfig) { changes <- fc }) }()
	time.Sleep(100 * time.Millisecond)

	save := func(body string) {
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.Rename(tmp, path); err != nil {
			t.Fatal(err)
		}
	}

	save("log:\n  level: debug\n")
	waitForLevel(t, changes, "debug")
	save("log:\n  level: warn\n")
	waitForLevel(t, changes, "warn")
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "log:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *FileConfig, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(fc *FileConfig) { changes <- fc }) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// The truncate and the write may arrive as separate events.
	deadline := time.After(3 * time.Second)
	for seen := false; !seen; {
		select {
		case fc := <-changes:
			seen = fc.Log.Level == "debug"
		case <-deadline:
			t.Fatal("no reload with the new level observed")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Watch did not stop")
	}
}
