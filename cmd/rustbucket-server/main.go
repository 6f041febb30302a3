// Package main provides the entry point for rustbucket-server.
//
// rustbucket-server is an in-memory key/value store speaking the Redis
// RESP2 protocol over TCP, built for pipelined throughput on multi-core
// hardware.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rahulkeshervani/rustbucket/internal/infra/buildinfo"
	"github.com/rahulkeshervani/rustbucket/internal/infra/confloader"
	"github.com/rahulkeshervani/rustbucket/internal/infra/shutdown"
	"github.com/rahulkeshervani/rustbucket/internal/server/config"
	"github.com/rahulkeshervani/rustbucket/internal/server/redisserver"
	"github.com/rahulkeshervani/rustbucket/internal/store"
	"github.com/rahulkeshervani/rustbucket/internal/telemetry/logger"
	"github.com/rahulkeshervani/rustbucket/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "rustbucket-server",
		Usage:   "in-memory Redis-compatible key/value server",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML configuration file",
				EnvVars: []string{"RUSTBUCKET_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (overrides config)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error (overrides config)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewSlog(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	log.Info("starting rustbucket-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"addr", cfg.Server.Addr)

	db := store.New()
	metrics := metric.NewRegistry(func() float64 { return float64(db.Count()) })

	srv := redisserver.New(&redisserver.Config{
		Addr:           cfg.Server.Addr,
		RequirePass:    cfg.Server.RequirePass,
		ReadBufferSize: cfg.Server.ReadBufferSize,
		RateLimit:      cfg.Server.RateLimit,
		IdleTimeout:    cfg.Server.IdleTimeout,
	}, db, metrics, log)

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("bind %s: %w", cfg.Server.Addr, err)
	}

	shutdownHandler := shutdown.NewHandler(30 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down resp server")
		return srv.Shutdown(ctx)
	})

	if cfg.Metrics.Enabled {
		metricsSrv := &http.Server{Addr: cfg.Metrics.Addr, Handler: metricsMux(metrics)}
		go func() {
			log.Info("metrics endpoint listening", "addr", cfg.Metrics.Addr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", "error", err)
			}
		}()
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down metrics endpoint")
			return metricsSrv.Shutdown(ctx)
		})
	}

	if path := c.String("config"); path != "" {
		watcher, err := watchLogLevel(path, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

// loadConfig merges defaults, the optional YAML file, environment
// variables, and flag overrides.
func loadConfig(c *cli.Context) (*config.ServerConfig, error) {
	cfg := config.Default()

	// Priority: flags > env > file > defaults. koanf merges last-wins, so
	// sources load in reverse priority order.
	loader := confloader.NewLoader()
	if path := c.String("config"); path != "" {
		if err := loader.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := loader.LoadEnv(); err != nil {
		return nil, err
	}

	overrides := map[string]any{}
	if addr := c.String("addr"); addr != "" {
		overrides["server.addr"] = addr
	}
	if level := c.String("log-level"); level != "" {
		overrides["log.level"] = level
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
	}

	if err := loader.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// watchLogLevel hot-reloads log.level when the config file changes. Only
// the level is applied live; everything else needs a restart.
func watchLogLevel(path string, log *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		fresh := config.Default()
		if err := confloader.NewLoader(confloader.WithConfigFile(path)).Load(fresh); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if fresh.Log.Level != logger.GetLevel() {
			logger.SetLevel(fresh.Log.Level)
			log.Info("log level changed", "level", fresh.Log.Level)
		}
	})
	watcher.StartAsync()
	return watcher, nil
}

func metricsMux(m *metric.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}
