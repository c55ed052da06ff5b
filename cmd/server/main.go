package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/bmi-calculator/internal/config"
	"github.com/iliyamo/bmi-calculator/internal/logging"
	"github.com/iliyamo/bmi-calculator/internal/metrics"
	"github.com/iliyamo/bmi-calculator/internal/router"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bmi-calculator exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var level slog.LevelVar
	lvl, _ := config.ParseLevel(cfg.LogLevel) // validated by Load
	level.Set(lvl)
	log := logging.New(&level, logging.WithFormat(cfg.LogFormat))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ConfigFile != "" {
		go func() {
			err := config.Watch(ctx, cfg.ConfigFile, func(fc *config.FileConfig) {
				if fc.Log.Level == "" {
					return
				}
				if l, err := config.ParseLevel(fc.Log.Level); err == nil {
					level.Set(l)
					log.Info("log level changed", "level", l.String())
				}
			})
			if err != nil {
				log.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	var rdb *redis.Client
	if cfg.Cache.Enabled {
		if rdb = config.NewRedisClient(cfg.Redis); rdb == nil {
			log.Warn("redis unreachable, response cache disabled", "addr", cfg.Redis.Addr)
		} else {
			defer rdb.Close()
		}
	}

	e := router.New(router.Options{
		Logger:           log,
		Metrics:          metrics.New(),
		Cache:            cfg.Cache,
		Redis:            rdb,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "api", "http://localhost"+addr+"/api/bmi")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)

	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
